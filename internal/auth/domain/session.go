// Package domain defines the core authentication domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/errors"
)

// Session represents an authenticated session. TokenHash is the SHA-256 hex
// digest of the opaque bearer token; the plaintext token is returned to the
// client once and never stored.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Domain-specific errors for authentication operations.
var (
	// ErrSessionNotFound indicates the session does not exist or was revoked.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrInvalidCredentials indicates the email or password did not match.
	// A single error covers both cases so responses don't reveal which field failed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrInvalidToken indicates the bearer token is missing, unknown or revoked.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrSessionExpired indicates the session exists but is past its expiry.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")
)
