package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/authz"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
)

type TestCaseService struct {
	store store.Store
	authz *authz.Engine
}

func NewTestCaseService(s store.Store, engine *authz.Engine) *TestCaseService {
	return &TestCaseService{store: s, authz: engine}
}

type TestCaseForm struct {
	Name           string
	Description    string
	Steps          []model.TestCaseStep
	ExpectedResult string
}

type TestCaseUpdateForm struct {
	Name           string
	Description    string
	Steps          []model.TestCaseStep
	ExpectedResult string
	Version        int
}

// ListTestCases authorizes against the owning project: whoever may read the
// project may read its test cases.
func (s *TestCaseService) ListTestCases(ctx context.Context, principal auth.Principal, projectID uuid.UUID) (model.TestCaseList, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindProject, projectID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindProject, projectID); err != nil {
		return nil, err
	}

	return s.store.TestCase().List(ctx, projectID)
}

func (s *TestCaseService) CreateTestCase(ctx context.Context, principal auth.Principal, projectID uuid.UUID, form TestCaseForm) (*model.TestCase, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionCreate, authz.KindTestCase, projectID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionCreate, authz.KindTestCase, projectID); err != nil {
		return nil, err
	}

	testCase, err := s.store.TestCase().Create(ctx, model.TestCase{
		ID:             uuid.New(),
		ProjectID:      projectID,
		Name:           form.Name,
		Description:    form.Description,
		Steps:          model.MakeJSONField(form.Steps),
		ExpectedResult: form.ExpectedResult,
	})
	if err != nil {
		return nil, err
	}
	return testCase, nil
}

func (s *TestCaseService) GetTestCase(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.TestCase, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindTestCase, id)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindTestCase, id); err != nil {
		return nil, err
	}

	testCase, err := s.store.TestCase().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTestCaseNotFound(id)
		}
		return nil, err
	}
	return testCase, nil
}

func (s *TestCaseService) UpdateTestCase(ctx context.Context, principal auth.Principal, id uuid.UUID, form TestCaseUpdateForm) (*model.TestCase, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindTestCase, id)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindTestCase, id); err != nil {
		return nil, err
	}

	testCase, err := s.store.TestCase().Update(ctx, model.TestCase{
		ID:             id,
		Name:           form.Name,
		Description:    form.Description,
		Steps:          model.MakeJSONField(form.Steps),
		ExpectedResult: form.ExpectedResult,
		Version:        form.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			return nil, NewErrTestCaseNotFound(id)
		case errors.Is(err, store.ErrVersionMismatch):
			return nil, NewErrVersionConflict("test case", id)
		default:
			return nil, err
		}
	}
	return testCase, nil
}

func (s *TestCaseService) DeleteTestCase(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionDelete, authz.KindTestCase, id)
	if err != nil {
		return err
	}
	if err := decisionToError(decision, authz.ActionDelete, authz.KindTestCase, id); err != nil {
		return err
	}

	return s.store.TestCase().Delete(ctx, id)
}
