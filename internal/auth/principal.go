package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthenticated is the single outcome for every authentication failure:
// missing, malformed, expired or re-signed tokens and missing memberships all
// collapse into it.
var ErrUnauthenticated = errors.New("unauthenticated")

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// Principal is the authenticated identity for a single request: the user, its
// company and its role as they are in the store right now. It is resolved
// fresh on every request and never cached.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      Role
}

type principalKeyType struct{}

var principalKey principalKeyType

func NewPrincipalContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	val := ctx.Value(principalKey)
	if val == nil {
		return Principal{}, false
	}
	return val.(Principal), true
}

func MustHavePrincipal(ctx context.Context) Principal {
	principal, found := PrincipalFromContext(ctx)
	if !found {
		zap.S().Named("auth").Panic("failed to find principal in context")
	}
	return principal
}
