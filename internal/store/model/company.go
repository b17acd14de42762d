package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Company is the root of a tenancy tree. Projects are deliberately not
// cascade-deleted: deleting a company with projects is blocked in the service
// layer and by the RESTRICT constraint in the schema.
type Company struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Projects    []Project
	Memberships []Membership `gorm:"constraint:OnDelete:CASCADE;"`
}

type CompanyList []Company

func (c Company) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}
