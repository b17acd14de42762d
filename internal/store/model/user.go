package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Memberships []Membership `gorm:"constraint:OnDelete:CASCADE;"`
	Credential  *Credential  `gorm:"constraint:OnDelete:CASCADE;"`
}

type UserList []User

func (u User) String() string {
	val, _ := json.Marshal(u)
	return string(val)
}

// Credential holds the password hash for a user. It never crosses the store
// boundary except into the credential store in internal/auth.
type Credential struct {
	UserID       uuid.UUID `gorm:"primaryKey"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
