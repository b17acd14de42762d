package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type Company interface {
	Create(ctx context.Context, company model.Company) (*model.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Company, error)
	Update(ctx context.Context, company model.Company) (*model.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompanyStore struct {
	db *gorm.DB
}

// Make sure we conform to Company interface
var _ Company = (*CompanyStore)(nil)

func NewCompanyStore(db *gorm.DB) Company {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *CompanyStore) Create(ctx context.Context, company model.Company) (*model.Company, error) {
	if result := s.getDB(ctx).Create(&company); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &company, nil
}

func (s *CompanyStore) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company := model.Company{ID: id}
	if result := s.getDB(ctx).First(&company); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &company, nil
}

func (s *CompanyStore) Update(ctx context.Context, company model.Company) (*model.Company, error) {
	result := s.getDB(ctx).Model(&model.Company{}).
		Where("id = ?", company.ID).
		Update("name", company.Name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(ctx, company.ID)
}

func (s *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.Company{ID: id})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
