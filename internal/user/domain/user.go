// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/errors"
)

// User represents a registered customer. Password holds the Argon2id hash,
// never the plaintext. EncryptedSSN holds the AES-256-GCM payload produced by
// the sensitive value codec.
type User struct {
	ID           uuid.UUID
	Email        string
	Password     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	DateOfBirth  string
	EncryptedSSN string
	Address      string
	City         string
	State        string
	ZipCode      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
