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

// MembershipService manages who belongs to a company and with which role.
// All operations are gated as updates on the company itself, so only admins
// may touch memberships.
type MembershipService struct {
	store store.Store
	authz *authz.Engine
}

func NewMembershipService(s store.Store, engine *authz.Engine) *MembershipService {
	return &MembershipService{store: s, authz: engine}
}

func (s *MembershipService) ListMembers(ctx context.Context, principal auth.Principal) (model.MembershipList, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionRead, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionRead, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	return s.store.Membership().List(ctx, principal.CompanyID)
}

// AddMember attaches an already registered user to the principal's company.
// A user belongs to exactly one company; inviting someone who already has a
// membership fails.
func (s *MembershipService) AddMember(ctx context.Context, principal auth.Principal, email string, role auth.Role) (*model.Membership, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	user, err := s.store.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrValidationFailed("no registered user with email %s", email)
		}
		return nil, err
	}

	if _, err := s.store.Membership().GetByUser(ctx, user.ID); err == nil {
		return nil, NewErrValidationFailed("user %s already belongs to a company", email)
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	membership, err := s.store.Membership().Create(ctx, model.Membership{
		ID:        uuid.New(),
		UserID:    user.ID,
		CompanyID: principal.CompanyID,
		Role:      string(role),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrValidationFailed("user %s already belongs to a company", email)
		}
		return nil, err
	}

	zap.S().Named("membership_service").Infow("member added",
		"company_id", principal.CompanyID, "user_id", user.ID, "role", role)
	return membership, nil
}

// UpdateMemberRole changes a member's role. The change takes effect on the
// member's very next request because principals are resolved per request.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, principal auth.Principal, userID uuid.UUID, role auth.Role) (*model.Membership, error) {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindCompany, principal.CompanyID); err != nil {
		return nil, err
	}

	membership, err := s.store.Membership().UpdateRole(ctx, principal.CompanyID, userID, string(role))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrMemberNotFound(userID)
		}
		return nil, err
	}
	return membership, nil
}

func (s *MembershipService) RemoveMember(ctx context.Context, principal auth.Principal, userID uuid.UUID) error {
	decision, err := s.authz.Authorize(ctx, principal, authz.ActionUpdate, authz.KindCompany, principal.CompanyID)
	if err != nil {
		return err
	}
	if err := decisionToError(decision, authz.ActionUpdate, authz.KindCompany, principal.CompanyID); err != nil {
		return err
	}

	if principal.UserID == userID {
		return NewErrValidationFailed("cannot remove yourself from the company")
	}

	if err := s.store.Membership().Delete(ctx, principal.CompanyID, userID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrMemberNotFound(userID)
		}
		return err
	}
	return nil
}
