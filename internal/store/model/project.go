package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	CompanyID   uuid.UUID `gorm:"not null;uniqueIndex:projects_company_id_name"`
	Name        string    `gorm:"not null;uniqueIndex:projects_company_id_name"`
	Description string
	BaseURL     string
	// Version guards against lost updates. Every successful update bumps it;
	// an update against a stale version fails with ErrVersionMismatch.
	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	TestCases []TestCase `gorm:"constraint:OnDelete:CASCADE;"`
}

type ProjectList []Project

func (p Project) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}
