package v1alpha1

import (
	"net/http"

	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/handlers/v1alpha1/mappers"
	"github.com/testlane/testlane/internal/handlers/validator"
)

// (GET /api/v1/projects/{id}/testcases)
func (s *ServiceHandler) ListTestCases(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	testCases, err := s.testCaseSrv.ListTestCases(r.Context(), principal, projectID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.TestCaseListToApi(testCases))
}

// (POST /api/v1/projects/{id}/testcases)
func (s *ServiceHandler) CreateTestCase(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request v1alpha1.TestCaseCreate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTestCaseValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	testCase, err := s.testCaseSrv.CreateTestCase(r.Context(), principal, projectID, mappers.TestCaseFormApi(request))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, mappers.TestCaseToApi(*testCase))
}

// (GET /api/v1/testcases/{id})
func (s *ServiceHandler) GetTestCase(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	testCase, err := s.testCaseSrv.GetTestCase(r.Context(), principal, id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.TestCaseToApi(*testCase))
}

// (PUT /api/v1/testcases/{id})
func (s *ServiceHandler) UpdateTestCase(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request v1alpha1.TestCaseUpdate
	if !decodeBody(w, r, &request) {
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTestCaseValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	testCase, err := s.testCaseSrv.UpdateTestCase(r.Context(), principal, id, mappers.TestCaseUpdateFormApi(request))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, mappers.TestCaseToApi(*testCase))
}

// (DELETE /api/v1/testcases/{id})
func (s *ServiceHandler) DeleteTestCase(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustHavePrincipal(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.testCaseSrv.DeleteTestCase(r.Context(), principal, id); err != nil {
		renderServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
