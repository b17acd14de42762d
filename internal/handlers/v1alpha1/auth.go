package v1alpha1

import (
	"net/http"

	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/handlers/v1alpha1/mappers"
	"github.com/testlane/testlane/internal/handlers/validator"
)

// (POST /api/v1/auth/register)
func (s *ServiceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request v1alpha1.RegisterRequest
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewAuthValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.userSrv.Register(r.Context(), mappers.RegisterFormApi(request))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	response := v1alpha1.RegisterResponse{User: mappers.UserToApi(result.User)}
	if result.Company != nil {
		company := mappers.CompanyToApi(*result.Company)
		response.Company = &company
	}
	renderJSON(w, r, http.StatusCreated, response)
}

// (POST /api/v1/auth/login)
func (s *ServiceHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request v1alpha1.LoginRequest
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, expiresAt, err := s.userSrv.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, v1alpha1.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
