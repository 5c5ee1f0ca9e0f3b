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

// PostgreSQLTransactionRepository handles transaction persistence for PostgreSQL
type PostgreSQLTransactionRepository struct {
	db *sql.DB
}

// NewPostgreSQLTransactionRepository creates a new PostgreSQLTransactionRepository
func NewPostgreSQLTransactionRepository(db *sql.DB) *PostgreSQLTransactionRepository {
	return &PostgreSQLTransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *PostgreSQLTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO transactions (id, account_id, type, status, amount_cents, description, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := querier.ExecContext(ctx, query, tx.ID, tx.AccountID, tx.Type, tx.Status,
		tx.AmountCents, tx.Description)
	if err != nil {
		return apperrors.Wrap(err, "failed to create transaction")
	}
	return nil
}

// ListByAccountID retrieves transactions for an account, newest first
func (r *PostgreSQLTransactionRepository) ListByAccountID(
	ctx context.Context,
	accountID uuid.UUID,
	limit int,
) ([]*domain.Transaction, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, account_id, type, status, amount_cents, description, created_at
			  FROM transactions WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list transactions by account id")
	}
	defer rows.Close() //nolint:errcheck

	var transactions []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction

		err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Type, &tx.Status, &tx.AmountCents,
			&tx.Description, &tx.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan transaction")
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate transactions")
	}

	return transactions, nil
}
