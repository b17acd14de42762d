package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type Credential interface {
	Create(ctx context.Context, credential model.Credential) error
	Get(ctx context.Context, userID uuid.UUID) (*model.Credential, error)
}

type CredentialStore struct {
	db *gorm.DB
}

// Make sure we conform to Credential interface
var _ Credential = (*CredentialStore)(nil)

func NewCredentialStore(db *gorm.DB) Credential {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *CredentialStore) Create(ctx context.Context, credential model.Credential) error {
	if result := s.getDB(ctx).Create(&credential); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, userID uuid.UUID) (*model.Credential, error) {
	credential := model.Credential{UserID: userID}
	if result := s.getDB(ctx).First(&credential); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &credential, nil
}
