// Package domain defines the core transaction domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/errors"
)

// Type represents the kind of transaction
type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
)

// Status represents the processing state of a transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction represents a ledger entry against an account. AmountCents is
// always positive; Type carries the direction. Description is sanitized
// before it reaches this struct.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Type        Type
	Status      Status
	AmountCents int64
	Description string
	CreatedAt   time.Time
}

// Domain-specific errors for transaction operations.
var (
	// ErrTransactionNotFound indicates the requested transaction does not exist.
	ErrTransactionNotFound = errors.Wrap(errors.ErrNotFound, "transaction not found")
)
