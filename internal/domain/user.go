package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// User roles. A user picks one at registration and keeps it for life.
const (
	RoleFreelancer = "FREELANCER"
	RoleHirer      = "HIRER"
)

func IsValidRole(role string) bool {
	return role == RoleFreelancer || role == RoleHirer
}

type User struct {
	ID           string    `json:"id"` // UUID
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Viewer identifies the principal performing an operation. A nil *Viewer is
// an anonymous request. Capability flags are derived from the role, never
// stored, and every operation receives the viewer explicitly as a parameter.
type Viewer struct {
	ID   string
	Role string
}

func (v *Viewer) IsAuthenticated() bool {
	return v != nil && v.ID != ""
}

func (v *Viewer) IsFreelancer() bool {
	return v.IsAuthenticated() && v.Role == RoleFreelancer
}

func (v *Viewer) IsHirer() bool {
	return v.IsAuthenticated() && v.Role == RoleHirer
}

type UserRepository interface {
	// CreateWithProfile inserts the user and its role-matched profile row as
	// one transaction.
	CreateWithProfile(ctx context.Context, user *User, profile *Profile) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// RegisterInput carries everything needed to create a user and its
// role-matched profile in one transaction.
type RegisterInput struct {
	Email       string `validate:"required,email"`
	DisplayName string `validate:"required,max=150"`
	Role        string `validate:"required"`
	Password    string `validate:"required,min=8"`
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
