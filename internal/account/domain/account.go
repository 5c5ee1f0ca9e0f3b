// Package domain defines the core account domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/errors"
)

// Type represents the kind of deposit account
type Type string

const (
	TypeChecking Type = "checking"
	TypeSavings  Type = "savings"
)

// IsValid checks if the account type is one of the supported kinds
func (t Type) IsValid() bool {
	return t == TypeChecking || t == TypeSavings
}

// Status represents the lifecycle state of an account
type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
	StatusClosed Status = "closed"
)

// Account represents a deposit account. BalanceCents stores the balance as an
// integer number of cents to avoid floating point drift.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         Type
	Status       Status
	Number       string
	BalanceCents int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for account operations.
var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountTypeExists indicates the user already has an account of this type.
	ErrAccountTypeExists = errors.Wrap(errors.ErrConflict, "account of this type already exists")

	// ErrAccountNotActive indicates the account cannot accept operations in its current status.
	ErrAccountNotActive = errors.Wrap(errors.ErrInvalidInput, "account is not active")

	// ErrNumberExhausted indicates the generator could not produce an unused
	// account number within the retry budget.
	ErrNumberExhausted = errors.Wrap(errors.ErrExhausted, "unable to generate a unique account number")

	// ErrNumberTaken indicates a generated candidate number collided with an
	// existing account. Callers retry on this error.
	ErrNumberTaken = errors.Wrap(errors.ErrConflict, "account number already in use")
)
