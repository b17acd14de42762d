package authz

import (
	"github.com/testlane/testlane/internal/auth"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type ResourceKind string

const (
	KindCompany  ResourceKind = "company"
	KindProject  ResourceKind = "project"
	KindTestCase ResourceKind = "test_case"
)

// policyTable crosses resource kind and action with the roles allowed to
// perform it inside their own company. Anything not listed is denied; there is
// no cross-tenant row and no superadmin.
//
// Company creation has an empty row: companies come into existence through
// sign-up, before a principal exists, and are never created through the
// authorization gate.
var policyTable = map[ResourceKind]map[Action][]auth.Role{
	KindCompany: {
		ActionCreate: {},
		ActionRead:   {auth.RoleAdmin, auth.RoleMember},
		ActionUpdate: {auth.RoleAdmin},
		ActionDelete: {auth.RoleAdmin},
	},
	KindProject: {
		ActionCreate: {auth.RoleAdmin},
		ActionRead:   {auth.RoleAdmin, auth.RoleMember},
		ActionUpdate: {auth.RoleAdmin},
		ActionDelete: {auth.RoleAdmin},
	},
	KindTestCase: {
		ActionCreate: {auth.RoleAdmin, auth.RoleMember},
		ActionRead:   {auth.RoleAdmin, auth.RoleMember},
		ActionUpdate: {auth.RoleAdmin, auth.RoleMember},
		ActionDelete: {auth.RoleAdmin, auth.RoleMember},
	},
}

// RoleAllowed is the pure policy lookup. Unknown kinds, actions and roles all
// fall through to deny.
func RoleAllowed(kind ResourceKind, action Action, role auth.Role) bool {
	actions, found := policyTable[kind]
	if !found {
		return false
	}

	roles, found := actions[action]
	if !found {
		return false
	}

	for _, allowed := range roles {
		if allowed == role {
			return true
		}
	}
	return false
}
