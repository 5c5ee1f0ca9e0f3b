// Package repository provides data persistence implementations for transaction entities.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
	"github.com/meridianfi/banking/internal/transaction/domain"
)

// MySQLTransactionRepository handles transaction persistence for MySQL
type MySQLTransactionRepository struct {
	db *sql.DB
}

// NewMySQLTransactionRepository creates a new MySQLTransactionRepository
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *MySQLTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO transactions (id, account_id, type, status, amount_cents, description, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := tx.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	accountIDBytes, err := tx.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, accountIDBytes, tx.Type, tx.Status,
		tx.AmountCents, tx.Description)
	if err != nil {
		return apperrors.Wrap(err, "failed to create transaction")
	}
	return nil
}

// ListByAccountID retrieves transactions for an account, newest first
func (r *MySQLTransactionRepository) ListByAccountID(
	ctx context.Context,
	accountID uuid.UUID,
	limit int,
) ([]*domain.Transaction, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, account_id, type, status, amount_cents, description, created_at
			  FROM transactions WHERE account_id = ? ORDER BY created_at DESC LIMIT ?`

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, accountIDBytes, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list transactions by account id")
	}
	defer rows.Close() //nolint:errcheck

	var transactions []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var rowID, rowAccountID []byte

		err := rows.Scan(&rowID, &rowAccountID, &tx.Type, &tx.Status, &tx.AmountCents,
			&tx.Description, &tx.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan transaction")
		}

		// Convert bytes back to UUIDs
		if err := tx.ID.UnmarshalBinary(rowID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := tx.AccountID.UnmarshalBinary(rowAccountID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate transactions")
	}

	return transactions, nil
}
