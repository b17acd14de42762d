package v1alpha1

import (
	"net/http"

	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/handlers/v1alpha1/mappers"
	"github.com/testlane/testlane/internal/handlers/validator"
)

// (GET /api/v1/company)
func (s *ServiceHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	company, err := s.companySrv.GetCompany(r.Context(), principal)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.CompanyToApi(*company))
}

// (PUT /api/v1/company)
func (s *ServiceHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	var request v1alpha1.CompanyUpdate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewAuthValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	company, err := s.companySrv.UpdateCompany(r.Context(), principal, request.Name)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.CompanyToApi(*company))
}

// (DELETE /api/v1/company)
func (s *ServiceHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	if err := s.companySrv.DeleteCompany(r.Context(), principal); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// (GET /api/v1/company/members)
func (s *ServiceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	members, err := s.membershipSrv.ListMembers(r.Context(), principal)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.MemberListToApi(members))
}

// (POST /api/v1/company/members)
func (s *ServiceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	var request v1alpha1.MemberCreate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewMemberValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role, _ := auth.ParseRole(request.Role)
	membership, err := s.membershipSrv.AddMember(r.Context(), principal, request.Email, role)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, mappers.MemberToApi(*membership))
}

// (PUT /api/v1/company/members/{userId})
func (s *ServiceHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var request v1alpha1.MemberUpdate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewMemberValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role, _ := auth.ParseRole(request.Role)
	membership, err := s.membershipSrv.UpdateMemberRole(r.Context(), principal, userID, role)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.MemberToApi(*membership))
}

// (DELETE /api/v1/company/members/{userId})
func (s *ServiceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := s.membershipSrv.RemoveMember(r.Context(), principal, userID); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
