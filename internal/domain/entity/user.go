package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the identity store. Its ID, rendered as a
// string, is the opaque subject identifier that scopes all per-user data.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User entity.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SubjectID returns the opaque subject identifier for the user.
func (u *User) SubjectID() string {
	return u.ID.String()
}
