package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/pkg/metrics"
)

type Decision string

const (
	// Allow permits the action.
	Allow Decision = "allow"
	// Deny rejects the action for a resource the principal is allowed to know
	// about: same tenant, insufficient role.
	Deny Decision = "deny"
	// DenyNotFound rejects the action without acknowledging the resource:
	// the resource is missing or belongs to another tenant. Callers surface
	// both identically as not-found so tenant existence cannot be probed.
	DenyNotFound Decision = "deny_not_found"
)

// Engine decides ALLOW/DENY for (principal, action, resource) triples. The
// owning company is resolved through the tenancy graph on every call.
type Engine struct {
	tenancy store.Tenancy
}

func NewEngine(s store.Store) *Engine {
	return &Engine{tenancy: s.Tenancy()}
}

// Authorize resolves the target's owning company and applies the policy
// table. For create actions resourceID identifies the parent resource (the
// company for a project, the project for a test case).
func (e *Engine) Authorize(ctx context.Context, principal auth.Principal, action Action, kind ResourceKind, resourceID uuid.UUID) (Decision, error) {
	owner, err := e.ownerCompany(ctx, principal, action, kind, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return e.decide(DenyNotFound, kind), nil
		}
		return Deny, err
	}

	if owner != principal.CompanyID {
		return e.decide(DenyNotFound, kind), nil
	}

	if !RoleAllowed(kind, action, principal.Role) {
		return e.decide(Deny, kind), nil
	}

	return e.decide(Allow, kind), nil
}

func (e *Engine) decide(decision Decision, kind ResourceKind) Decision {
	metrics.IncreaseAuthzDecisionsTotal(string(decision), string(kind))
	return decision
}

func (e *Engine) ownerCompany(ctx context.Context, principal auth.Principal, action Action, kind ResourceKind, resourceID uuid.UUID) (uuid.UUID, error) {
	if action == ActionCreate {
		switch kind {
		case KindProject:
			// resourceID is the target company
			exists, err := e.tenancy.CompanyExists(ctx, resourceID)
			if err != nil {
				return uuid.Nil, err
			}
			if !exists {
				return uuid.Nil, store.ErrRecordNotFound
			}
			return resourceID, nil
		case KindTestCase:
			// resourceID is the target project
			return e.tenancy.OwnerCompanyOfProject(ctx, resourceID)
		default:
			// company creation happens outside the gate; the empty policy
			// row denies it here
			return principal.CompanyID, nil
		}
	}

	switch kind {
	case KindCompany:
		exists, err := e.tenancy.CompanyExists(ctx, resourceID)
		if err != nil {
			return uuid.Nil, err
		}
		if !exists {
			return uuid.Nil, store.ErrRecordNotFound
		}
		return resourceID, nil
	case KindProject:
		return e.tenancy.OwnerCompanyOfProject(ctx, resourceID)
	case KindTestCase:
		return e.tenancy.OwnerCompanyOfTestCase(ctx, resourceID)
	default:
		return uuid.Nil, store.ErrRecordNotFound
	}
}
