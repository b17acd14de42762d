package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
	"github.com/testlane/testlane/pkg/metrics"
	"go.uber.org/zap"
)

type UserService struct {
	store       store.Store
	credentials *auth.Credentials
}

func NewUserService(s store.Store, credentials *auth.Credentials) *UserService {
	return &UserService{store: s, credentials: credentials}
}

type RegisterForm struct {
	Email    string
	Name     string
	Password string
	// CompanyName, when set, creates a new company with the registering user
	// as its admin. Left empty the user stays without membership until an
	// admin invites them.
	CompanyName string
}

type RegisterResult struct {
	User    model.User
	Company *model.Company
}

func (s *UserService) Register(ctx context.Context, form RegisterForm) (*RegisterResult, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.User().Create(ctx, model.User{
		ID:    uuid.New(),
		Email: form.Email,
		Name:  form.Name,
	})
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateIdentity(form.Email)
		}
		return nil, err
	}

	if err := s.credentials.Register(ctx, user.ID, form.Password); err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateIdentity(form.Email)
		}
		return nil, err
	}

	result := &RegisterResult{User: *user}

	if form.CompanyName != "" {
		company, err := s.store.Company().Create(ctx, model.Company{
			ID:   uuid.New(),
			Name: form.CompanyName,
		})
		if err != nil {
			_, _ = store.Rollback(ctx)
			if errors.Is(err, store.ErrDuplicateKey) {
				return nil, NewErrNameTaken("company", form.CompanyName)
			}
			return nil, err
		}

		if _, err := s.store.Membership().Create(ctx, model.Membership{
			ID:        uuid.New(),
			UserID:    user.ID,
			CompanyID: company.ID,
			Role:      model.RoleAdmin,
		}); err != nil {
			_, _ = store.Rollback(ctx)
			return nil, err
		}

		result.Company = company
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("user_service").Infow("user registered", "user_id", user.ID)
	return result, nil
}

// Login verifies the credentials and issues a bearer token. The failure is a
// single outcome regardless of whether the identity exists.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	userID, ok := s.credentials.Verify(ctx, email, password)
	if !ok {
		metrics.IncreaseLoginAttemptsTotal("failure")
		return "", time.Time{}, NewErrInvalidCredentials()
	}

	token, expiresAt, err := s.credentials.IssueToken(userID)
	if err != nil {
		return "", time.Time{}, err
	}

	metrics.IncreaseLoginAttemptsTotal("success")
	return token, expiresAt, nil
}
