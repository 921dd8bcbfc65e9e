// Package domain contains the core data types for the trip-planning backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, ai, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Users are created once and never mutated or
// deleted. The password is stored only as a bcrypt hash and is excluded from
// JSON serialization.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
