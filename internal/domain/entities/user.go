package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleFounder UserRole = "FOUNDER"
)

// User represents an authenticated account. Founders are created on first
// LinkedIn sign-in and are identified only by the provider's stable subject
// claim; admins are provisioned with an email and password hash.
type User struct {
	ID           uuid.UUID   `json:"id"`
	ExternalRef  null.String `json:"externalRef,omitempty"`
	Email        null.String `json:"email,omitempty"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsAdmin reports whether the user may drive moderation transitions
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// AdminLoginInput represents input for admin login
type AdminLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}
