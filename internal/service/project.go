package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/authz"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
	"go.uber.org/zap"
)

type ProjectService struct {
	store store.Store
	authz *authz.Engine
}

func NewProjectService(s store.Store, engine *authz.Engine) *ProjectService {
	return &ProjectService{store: s, authz: engine}
}

type ProjectForm struct {
	Name        string
	Description string
	BaseURL     string
}

type ProjectUpdateForm struct {
	Name        string
	Description string
	BaseURL     string
	// Version must match the stored row or the update is rejected as a
	// conflict.
	Version int
}

// ListProjects is always scoped to the caller's own company, so there is no
// cross-tenant surface to authorize per row.
func (s *ProjectService) ListProjects(ctx context.Context, principal auth.Principal) (model.ProjectList, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	return s.store.Project().List(ctx, principal.CompanyID)
}

func (s *ProjectService) CreateProject(ctx context.Context, principal auth.Principal, form ProjectForm) (*model.Project, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionCreate, authz.KindProject, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionCreate, authz.KindProject, principal.CompanyID); err != nil {
		return nil, err
	}

	project, err := s.store.Project().Create(ctx, model.Project{
		ID:          uuid.New(),
		CompanyID:   principal.CompanyID,
		Name:        form.Name,
		Description: form.Description,
		BaseURL:     form.BaseURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrNameTaken("project", form.Name)
		}
		return nil, err
	}

	zap.S().Named("project_service").Infow("project created",
		"project_id", project.ID, "company_id", principal.CompanyID)
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Project, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindProject, id)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindProject, id); err != nil {
		return nil, err
	}

	project, err := s.store.Project().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProjectNotFound(id)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, principal auth.Principal, id uuid.UUID, form ProjectUpdateForm) (*model.Project, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindProject, id)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindProject, id); err != nil {
		return nil, err
	}

	project, err := s.store.Project().Update(ctx, model.Project{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		BaseURL:     form.BaseURL,
		Version:     form.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			return nil, NewErrProjectNotFound(id)
		case errors.Is(err, store.ErrVersionMismatch):
			return nil, NewErrVersionConflict("project", id)
		case errors.Is(err, store.ErrDuplicateKey):
			return nil, NewErrNameTaken("project", form.Name)
		default:
			return nil, err
		}
	}
	return project, nil
}

// DeleteProject removes the project together with every test case under it.
// The cascade runs in one transaction so a failure leaves no orphans behind.
func (s *ProjectService) DeleteProject(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionDelete, authz.KindProject, id)
	if err != nil {
		return err
	}
	if err := decisionToError(decision, authz.ActionDelete, authz.KindProject, id); err != nil {
		return err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return err
	}

	if err := s.store.TestCase().DeleteByProject(ctx, id); err != nil {
		_, _ = store.Rollback(ctx)
		return err
	}
	if err := s.store.Project().Delete(ctx, id); err != nil {
		_, _ = store.Rollback(ctx)
		return err
	}

	_, err = store.Commit(ctx)
	return err
}
