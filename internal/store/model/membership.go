package model

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles. Stored as plain strings; the authorization layer owns the
// typed enum.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership ties a user to a company with a role. A user holds at most one
// membership per company.
type Membership struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:memberships_user_id_company_id"`
	CompanyID uuid.UUID `gorm:"not null;uniqueIndex:memberships_user_id_company_id"`
	Role      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MembershipList []Membership
