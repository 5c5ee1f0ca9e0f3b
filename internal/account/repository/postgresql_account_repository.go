// Package repository provides data persistence implementations for account entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	accountDomain "github.com/meridianfi/banking/internal/account/domain"
	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
)

// PostgreSQLAccountRepository handles account persistence for PostgreSQL
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account. The accounts table carries unique constraints
// on (user_id, type) and on number; violations map to the matching domain error.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, user_id, type, status, number, balance_cents, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, account.ID, account.UserID, account.Type,
		account.Status, account.Number, account.BalanceCents)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			if strings.Contains(strings.ToLower(err.Error()), "number") {
				return accountDomain.ErrNumberTaken
			}
			return accountDomain.ErrAccountTypeExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE id = $1`

	var account accountDomain.Account
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by id")
	}

	return &account, nil
}

// ListByUserID retrieves all accounts owned by a user, oldest first
func (r *PostgreSQLAccountRepository) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts by user id")
	}
	defer rows.Close() //nolint:errcheck

	var accounts []*accountDomain.Account
	for rows.Next() {
		var account accountDomain.Account

		err := rows.Scan(&account.ID, &account.UserID, &account.Type, &account.Status,
			&account.Number, &account.BalanceCents, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}

		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// GetByUserIDAndType retrieves a user's account of the given type
func (r *PostgreSQLAccountRepository) GetByUserIDAndType(
	ctx context.Context,
	userID uuid.UUID,
	accountType accountDomain.Type,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE user_id = $1 AND type = $2`

	var account accountDomain.Account
	err := querier.QueryRowContext(ctx, query, userID, accountType).Scan(
		&account.ID, &account.UserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by user id and type")
	}

	return &account, nil
}

// GetByNumber retrieves an account by its account number
func (r *PostgreSQLAccountRepository) GetByNumber(
	ctx context.Context,
	number string,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE number = $1`

	var account accountDomain.Account
	err := querier.QueryRowContext(ctx, query, number).Scan(
		&account.ID, &account.UserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by number")
	}

	return &account, nil
}

// UpdateBalance sets the account balance
func (r *PostgreSQLAccountRepository) UpdateBalance(
	ctx context.Context,
	id uuid.UUID,
	balanceCents int64,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts SET balance_cents = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, balanceCents, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account balance")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return accountDomain.ErrAccountNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
