package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type TestCase interface {
	List(ctx context.Context, projectID uuid.UUID) (model.TestCaseList, error)
	Create(ctx context.Context, testCase model.TestCase) (*model.TestCase, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TestCase, error)
	Update(ctx context.Context, testCase model.TestCase) (*model.TestCase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type TestCaseStore struct {
	db *gorm.DB
}

// Make sure we conform to TestCase interface
var _ TestCase = (*TestCaseStore)(nil)

func NewTestCaseStore(db *gorm.DB) TestCase {
	return &TestCaseStore{db: db}
}

func (s *TestCaseStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *TestCaseStore) List(ctx context.Context, projectID uuid.UUID) (model.TestCaseList, error) {
	var testCases model.TestCaseList
	result := s.getDB(ctx).Where("project_id = ?", projectID).Order("name").Find(&testCases)
	if result.Error != nil {
		return nil, result.Error
	}
	return testCases, nil
}

func (s *TestCaseStore) Create(ctx context.Context, testCase model.TestCase) (*model.TestCase, error) {
	testCase.Version = 1
	if result := s.getDB(ctx).Create(&testCase); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &testCase, nil
}

func (s *TestCaseStore) Get(ctx context.Context, id uuid.UUID) (*model.TestCase, error) {
	testCase := model.TestCase{ID: id}
	if result := s.getDB(ctx).First(&testCase); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &testCase, nil
}

// Update is optimistic, same contract as ProjectStore.Update.
func (s *TestCaseStore) Update(ctx context.Context, testCase model.TestCase) (*model.TestCase, error) {
	db := s.getDB(ctx)

	result := db.Model(&model.TestCase{}).
		Where("id = ? AND version = ?", testCase.ID, testCase.Version).
		Updates(map[string]any{
			"name":            testCase.Name,
			"description":     testCase.Description,
			"steps":           testCase.Steps,
			"expected_result": testCase.ExpectedResult,
			"version":         testCase.Version + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&model.TestCase{}).Where("id = ?", testCase.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrRecordNotFound
		}
		return nil, ErrVersionMismatch
	}

	return s.Get(ctx, testCase.ID)
}

func (s *TestCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.TestCase{ID: id})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *TestCaseStore) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	result := s.getDB(ctx).Where("project_id = ?", projectID).Delete(&model.TestCase{})
	return result.Error
}
