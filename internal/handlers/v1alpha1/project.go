package v1alpha1

import (
	"net/http"

	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/handlers/v1alpha1/mappers"
	"github.com/testlane/testlane/internal/handlers/validator"
)

// (GET /api/v1/projects)
func (s *ServiceHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	projects, err := s.projectSrv.ListProjects(r.Context(), principal)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.ProjectListToApi(projects))
}

// (POST /api/v1/projects)
func (s *ServiceHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	var request v1alpha1.ProjectCreate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewProjectValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.projectSrv.CreateProject(r.Context(), principal, mappers.ProjectFormApi(request))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, mappers.ProjectToApi(*project))
}

// (GET /api/v1/projects/{id})
func (s *ServiceHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := s.projectSrv.GetProject(r.Context(), principal, id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.ProjectToApi(*project))
}

// (PUT /api/v1/projects/{id})
func (s *ServiceHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request v1alpha1.ProjectUpdate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewProjectValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.projectSrv.UpdateProject(r.Context(), principal, id, mappers.ProjectUpdateFormApi(request))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.ProjectToApi(*project))
}

// (DELETE /api/v1/projects/{id})
func (s *ServiceHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.projectSrv.DeleteProject(r.Context(), principal, id); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
