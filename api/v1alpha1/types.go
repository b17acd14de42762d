package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// Error is the body returned with every non-2xx response.
type Error struct {
	// Message is a human readable description of the failure.
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,display_name"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	// CompanyName is optional. When present a company is created and the
	// registering user becomes its admin.
	CompanyName string `json:"companyName,omitempty" validate:"omitempty,display_name"`
}

type RegisterResponse struct {
	User    User     `json:"user"`
	Company *Company `json:"company,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type User struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Company struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CompanyUpdate struct {
	Name string `json:"name" validate:"required,display_name"`
}

type Member struct {
	UserId    uuid.UUID `json:"userId"`
	CompanyId uuid.UUID `json:"companyId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type MemberList []Member

type MemberCreate struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,member_role"`
}

type MemberUpdate struct {
	Role string `json:"role" validate:"required,member_role"`
}

type Project struct {
	Id          uuid.UUID `json:"id"`
	CompanyId   uuid.UUID `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BaseUrl     string    `json:"baseUrl,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectList []Project

type ProjectCreate struct {
	Name        string `json:"name" validate:"required,display_name"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	BaseUrl     string `json:"baseUrl,omitempty" validate:"omitempty,url"`
}

type ProjectUpdate struct {
	Name        string `json:"name" validate:"required,display_name"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	BaseUrl     string `json:"baseUrl,omitempty" validate:"omitempty,url"`
	// Version is the version the client last read. A stale version is
	// rejected with a conflict.
	Version int `json:"version" validate:"required,min=1"`
}

type TestCaseStep struct {
	Position       int    `json:"position" validate:"min=1"`
	Name           string `json:"name" validate:"required"`
	Action         string `json:"action,omitempty"`
	ExpectedResult string `json:"expectedResult,omitempty"`
}

type TestCase struct {
	Id             uuid.UUID      `json:"id"`
	ProjectId      uuid.UUID      `json:"projectId"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Steps          []TestCaseStep `json:"steps"`
	ExpectedResult string         `json:"expectedResult,omitempty"`
	Version        int            `json:"version"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type TestCaseList []TestCase

type TestCaseCreate struct {
	Name           string         `json:"name" validate:"required,display_name"`
	Description    string         `json:"description,omitempty" validate:"max=2000"`
	Steps          []TestCaseStep `json:"steps" validate:"dive"`
	ExpectedResult string         `json:"expectedResult,omitempty" validate:"max=2000"`
}

type TestCaseUpdate struct {
	Name           string         `json:"name" validate:"required,display_name"`
	Description    string         `json:"description,omitempty" validate:"max=2000"`
	Steps          []TestCaseStep `json:"steps" validate:"dive"`
	ExpectedResult string         `json:"expectedResult,omitempty" validate:"max=2000"`
	Version        int            `json:"version" validate:"required,min=1"`
}
