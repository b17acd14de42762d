package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type Project interface {
	List(ctx context.Context, companyID uuid.UUID) (model.ProjectList, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, project model.Project) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type ProjectStore struct {
	db *gorm.DB
}

// Make sure we conform to Project interface
var _ Project = (*ProjectStore)(nil)

func NewProjectStore(db *gorm.DB) Project {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *ProjectStore) List(ctx context.Context, companyID uuid.UUID) (model.ProjectList, error) {
	var projects model.ProjectList
	result := s.getDB(ctx).Where("company_id = ?", companyID).Order("name").Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (s *ProjectStore) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	project.Version = 1
	if result := s.getDB(ctx).Create(&project); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &project, nil
}

func (s *ProjectStore) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project := model.Project{ID: id}
	if result := s.getDB(ctx).First(&project); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

// Update applies an optimistic write: the row is only touched when the caller
// holds the current version. A stale version yields ErrVersionMismatch so two
// concurrent updates cannot silently overwrite each other.
func (s *ProjectStore) Update(ctx context.Context, project model.Project) (*model.Project, error) {
	db := s.getDB(ctx)

	result := db.Model(&model.Project{}).
		Where("id = ? AND version = ?", project.ID, project.Version).
		Updates(map[string]any{
			"name":        project.Name,
			"description": project.Description,
			"base_url":    project.BaseURL,
			"version":     project.Version + 1,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&model.Project{}).Where("id = ?", project.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrRecordNotFound
		}
		return nil, ErrVersionMismatch
	}

	return s.Get(ctx, project.ID)
}

func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.Project{ID: id})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *ProjectStore) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	result := s.getDB(ctx).Model(&model.Project{}).Where("company_id = ?", companyID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
