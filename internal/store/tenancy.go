package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

// Tenancy resolves a resource to its owning company. Lookups always hit the
// backing store so an authorization decision never runs against stale
// ownership.
type Tenancy interface {
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	OwnerCompanyOfProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error)
	OwnerCompanyOfTestCase(ctx context.Context, testCaseID uuid.UUID) (uuid.UUID, error)
}

type TenancyStore struct {
	db *gorm.DB
}

// Make sure we conform to Tenancy interface
var _ Tenancy = (*TenancyStore)(nil)

func NewTenancyStore(db *gorm.DB) Tenancy {
	return &TenancyStore{db: db}
}

func (s *TenancyStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *TenancyStore) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := s.getDB(ctx).Model(&model.Company{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (s *TenancyStore) OwnerCompanyOfProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	var row struct{ CompanyID uuid.UUID }
	result := s.getDB(ctx).Model(&model.Project{}).
		Select("company_id").
		Where("id = ?", projectID).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrRecordNotFound
		}
		return uuid.Nil, result.Error
	}
	return row.CompanyID, nil
}

// OwnerCompanyOfTestCase is the two-hop resolution: test case -> project -> company.
func (s *TenancyStore) OwnerCompanyOfTestCase(ctx context.Context, testCaseID uuid.UUID) (uuid.UUID, error) {
	var row struct{ CompanyID uuid.UUID }
	result := s.getDB(ctx).Model(&model.TestCase{}).
		Select("projects.company_id as company_id").
		Joins("JOIN projects ON projects.id = test_cases.project_id").
		Where("test_cases.id = ?", testCaseID).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrRecordNotFound
		}
		return uuid.Nil, result.Error
	}
	return row.CompanyID, nil
}
