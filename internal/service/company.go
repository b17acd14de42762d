package service

import (
	"context"
	"errors"

	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/authz"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
)

type CompanyService struct {
	store store.Store
	authz *authz.Engine
}

func NewCompanyService(s store.Store, engine *authz.Engine) *CompanyService {
	return &CompanyService{store: s, authz: engine}
}

func (s *CompanyService) GetCompany(ctx context.Context, principal auth.Principal) (*model.Company, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	company, err := s.store.Company().Get(ctx, principal.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCompanyNotFound(principal.CompanyID)
		}
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, principal auth.Principal, name string) (*model.Company, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	company, err := s.store.Company().Update(ctx, model.Company{ID: principal.CompanyID, Name: name})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			return nil, NewErrCompanyNotFound(principal.CompanyID)
		case errors.Is(err, store.ErrDuplicateKey):
			return nil, NewErrNameTaken("company", name)
		default:
			return nil, err
		}
	}
	return company, nil
}

// DeleteCompany blocks when the company still owns projects. Cascading a whole
// tenant away on a single DELETE is never implicit.
func (s *CompanyService) DeleteCompany(ctx context.Context, principal auth.Principal) error {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionDelete, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return err
	}
	if err := decisionToError(decision, authz.ActionDelete, authz.KindCompany, principal.CompanyID); err != nil {
		return err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return err
	}

	count, err := s.store.Project().CountByCompany(ctx, principal.CompanyID)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return err
	}
	if count > 0 {
		_, _ = store.Rollback(ctx)
		return NewErrCompanyHasProjects(principal.CompanyID)
	}

	if err := s.store.Membership().DeleteByCompany(ctx, principal.CompanyID); err != nil {
		_, _ = store.Rollback(ctx)
		return err
	}

	if err := s.store.Company().Delete(ctx, principal.CompanyID); err != nil {
		_, _ = store.Rollback(ctx)
		return err
	}

	_, err = store.Commit(ctx)
	return err
}
