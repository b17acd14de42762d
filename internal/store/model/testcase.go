package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TestCaseStep is a single ordered step of a test case, stored as part of the
// case's jsonb steps column.
type TestCaseStep struct {
	Position       int    `json:"position"`
	Name           string `json:"name"`
	Action         string `json:"action"`
	ExpectedResult string `json:"expectedResult,omitempty"`
}

type TestCase struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	ProjectID      uuid.UUID `gorm:"not null;index:test_cases_project_id_idx"`
	Name           string    `gorm:"not null"`
	Description    string
	Steps          *JSONField[[]TestCaseStep] `gorm:"type:jsonb"`
	ExpectedResult string
	Version        int `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TestCaseList []TestCase

func (t TestCase) String() string {
	val, _ := json.Marshal(t)
	return string(val)
}
