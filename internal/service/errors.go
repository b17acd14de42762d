package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/authz"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrCompanyNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "company")
}

func NewErrProjectNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "project")
}

func NewErrTestCaseNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "test case")
}

func NewErrMemberNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "member")
}

type ErrForbidden struct {
	error
}

func NewErrForbidden(action authz.Action, resourceType authz.ResourceKind) *ErrForbidden {
	return &ErrForbidden{fmt.Errorf("forbidden to %s %s", action, resourceType)}
}

type ErrConflict struct {
	error
}

func NewErrVersionConflict(resourceType string, id uuid.UUID) *ErrConflict {
	return &ErrConflict{fmt.Errorf("%s %s was modified concurrently", resourceType, id)}
}

func NewErrNameTaken(resourceType, name string) *ErrConflict {
	return &ErrConflict{fmt.Errorf("%s named %q already exists", resourceType, name)}
}

type ErrValidationFailed struct {
	error
}

func NewErrValidationFailed(format string, args ...any) *ErrValidationFailed {
	return &ErrValidationFailed{fmt.Errorf(format, args...)}
}

func NewErrCompanyHasProjects(id uuid.UUID) *ErrValidationFailed {
	return NewErrValidationFailed("company %s still owns projects", id)
}

type ErrDuplicateIdentity struct {
	error
}

func NewErrDuplicateIdentity(email string) *ErrDuplicateIdentity {
	return &ErrDuplicateIdentity{fmt.Errorf("identity %s is already registered", email)}
}

type ErrInvalidCredentials struct {
	error
}

func NewErrInvalidCredentials() *ErrInvalidCredentials {
	return &ErrInvalidCredentials{fmt.Errorf("invalid credentials")}
}

// decisionToError maps an authorization decision to the error the transport
// layer translates into a status code. DenyNotFound deliberately comes back
// as a plain not-found.
func decisionToError(decision authz.Decision, action authz.Action, kind authz.ResourceKind, resourceID uuid.UUID) error {
	switch decision {
	case authz.Allow:
		return nil
	case authz.DenyNotFound:
		return NewErrResourceNotFound(resourceID, string(kind))
	default:
		return NewErrForbidden(action, kind)
	}
}
