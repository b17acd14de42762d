package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type Membership interface {
	Create(ctx context.Context, membership model.Membership) (*model.Membership, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.Membership, error)
	Get(ctx context.Context, companyID, userID uuid.UUID) (*model.Membership, error)
	List(ctx context.Context, companyID uuid.UUID) (model.MembershipList, error)
	UpdateRole(ctx context.Context, companyID, userID uuid.UUID, role string) (*model.Membership, error)
	Delete(ctx context.Context, companyID, userID uuid.UUID) error
	DeleteByCompany(ctx context.Context, companyID uuid.UUID) error
}

type MembershipStore struct {
	db *gorm.DB
}

// Make sure we conform to Membership interface
var _ Membership = (*MembershipStore)(nil)

func NewMembershipStore(db *gorm.DB) Membership {
	return &MembershipStore{db: db}
}

func (s *MembershipStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *MembershipStore) Create(ctx context.Context, membership model.Membership) (*model.Membership, error) {
	if result := s.getDB(ctx).Create(&membership); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &membership, nil
}

// GetByUser returns the user's membership. A user belongs to a single company;
// the unique index on (user_id, company_id) plus this lookup keep the
// principal's tenant unambiguous.
func (s *MembershipStore) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	result := s.getDB(ctx).Where("user_id = ?", userID).Order("created_at").First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &membership, nil
}

func (s *MembershipStore) Get(ctx context.Context, companyID, userID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	result := s.getDB(ctx).Where("company_id = ? AND user_id = ?", companyID, userID).First(&membership)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &membership, nil
}

func (s *MembershipStore) List(ctx context.Context, companyID uuid.UUID) (model.MembershipList, error) {
	var memberships model.MembershipList
	result := s.getDB(ctx).Where("company_id = ?", companyID).Order("created_at").Find(&memberships)
	if result.Error != nil {
		return nil, result.Error
	}
	return memberships, nil
}

func (s *MembershipStore) UpdateRole(ctx context.Context, companyID, userID uuid.UUID, role string) (*model.Membership, error) {
	result := s.getDB(ctx).Model(&model.Membership{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Update("role", role)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(ctx, companyID, userID)
}

func (s *MembershipStore) Delete(ctx context.Context, companyID, userID uuid.UUID) error {
	result := s.getDB(ctx).Where("company_id = ? AND user_id = ?", companyID, userID).Delete(&model.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MembershipStore) DeleteByCompany(ctx context.Context, companyID uuid.UUID) error {
	result := s.getDB(ctx).Where("company_id = ?", companyID).Delete(&model.Membership{})
	return result.Error
}
