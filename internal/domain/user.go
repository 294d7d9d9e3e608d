package domain

import (
	"context"
	"time"
)

// Roles assignable to users.
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a User with the participant role. ID is set by the
// repository on create.
func NewUser(username, passwordHash, email string, createdAt time.Time) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         RoleParticipant,
		CreatedAt:    createdAt,
	}
}

// PasswordHasher hashes and verifies passwords. Implementations may use
// bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, username, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID and role.
type TokenVerifier interface {
	Verify(token string) (userID, role string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// UserService defines user account operations.
type UserService interface {
	Register(ctx context.Context, username, password, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// AuthService authenticates users and issues tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
}
