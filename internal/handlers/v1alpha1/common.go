package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/service"
	"go.uber.org/zap"
)

// ServiceHandler exposes the services over HTTP. Routes are registered by the
// api server; every method here assumes the authentication middleware already
// ran for protected paths.
type ServiceHandler struct {
	userSrv       *service.UserService
	companySrv    *service.CompanyService
	membershipSrv *service.MembershipService
	projectSrv    *service.ProjectService
	testCaseSrv   *service.TestCaseService
}

func NewServiceHandler(
	userService *service.UserService,
	companyService *service.CompanyService,
	membershipService *service.MembershipService,
	projectService *service.ProjectService,
	testCaseService *service.TestCaseService,
) *ServiceHandler {
	return &ServiceHandler{
		userSrv:       userService,
		companySrv:    companyService,
		membershipSrv: membershipService,
		projectSrv:    projectService,
		testCaseSrv:   testCaseService,
	}
}

func renderJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderJSON(w, r, status, v1alpha1.Error{Message: message})
}

// renderServiceError translates the service error taxonomy into status codes.
// Anything unrecognized is a 500 with the detail kept out of the response.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrInvalidCredentials:
		renderError(w, r, http.StatusUnauthorized, err.Error())
	case *service.ErrForbidden:
		renderError(w, r, http.StatusForbidden, err.Error())
	case *service.ErrResourceNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrValidationFailed:
		renderError(w, r, http.StatusBadRequest, err.Error())
	case *service.ErrConflict:
		renderError(w, r, http.StatusConflict, err.Error())
	case *service.ErrDuplicateIdentity:
		renderError(w, r, http.StatusConflict, err.Error())
	default:
		zap.S().Named("handlers").Errorw("request failed", "error", err, "path", r.URL.Path)
		renderError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "malformed resource id")
		return uuid.Nil, false
	}
	return id, true
}
