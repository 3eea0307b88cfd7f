package entity

import (
	"time"
)

// User is the aggregate root for the credential domain.
// Email is stored normalized and is the logical identifier; PasswordHash is a
// bcrypt hash and never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
