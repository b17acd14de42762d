package auth

import (
	"context"
	"errors"

	"github.com/testlane/testlane/internal/store"
)

// Resolver turns a raw bearer token into a Principal. The membership lookup
// runs on every call: a role change between two requests is visible on the
// second request without re-authentication.
type Resolver struct {
	store       store.Store
	credentials *Credentials
}

func NewResolver(s store.Store, credentials *Credentials) *Resolver {
	return &Resolver{store: s, credentials: credentials}
}

func (r *Resolver) Resolve(ctx context.Context, rawToken string) (Principal, error) {
	userID, err := r.credentials.ValidateToken(rawToken)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}

	membership, err := r.store.Membership().GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, err
	}

	role, ok := ParseRole(membership.Role)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{
		UserID:    userID,
		CompanyID: membership.CompanyID,
		Role:      role,
	}, nil
}
