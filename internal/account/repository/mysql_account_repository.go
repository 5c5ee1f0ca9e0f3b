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

// MySQLAccountRepository handles account persistence for MySQL
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account. The accounts table carries unique constraints
// on (user_id, type) and on number; violations map to the matching domain error.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, user_id, type, status, number, balance_cents, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userIDBytes, err := account.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, userIDBytes, account.Type,
		account.Status, account.Number, account.BalanceCents)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var account accountDomain.Account
	var rowID, rowUserID []byte
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&rowID, &rowUserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by id")
	}

	if err := scanAccountIDs(&account, rowID, rowUserID); err != nil {
		return nil, err
	}

	return &account, nil
}

// ListByUserID retrieves all accounts owned by a user, oldest first
func (r *MySQLAccountRepository) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE user_id = ? ORDER BY created_at ASC`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts by user id")
	}
	defer rows.Close() //nolint:errcheck

	var accounts []*accountDomain.Account
	for rows.Next() {
		var account accountDomain.Account
		var rowID, rowUserID []byte

		err := rows.Scan(&rowID, &rowUserID, &account.Type, &account.Status,
			&account.Number, &account.BalanceCents, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}

		if err := scanAccountIDs(&account, rowID, rowUserID); err != nil {
			return nil, err
		}

		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// GetByUserIDAndType retrieves a user's account of the given type
func (r *MySQLAccountRepository) GetByUserIDAndType(
	ctx context.Context,
	userID uuid.UUID,
	accountType accountDomain.Type,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE user_id = ? AND type = ?`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var account accountDomain.Account
	var rowID, rowUserID []byte
	err = querier.QueryRowContext(ctx, query, userIDBytes, accountType).Scan(
		&rowID, &rowUserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by user id and type")
	}

	if err := scanAccountIDs(&account, rowID, rowUserID); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetByNumber retrieves an account by its account number
func (r *MySQLAccountRepository) GetByNumber(
	ctx context.Context,
	number string,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, type, status, number, balance_cents, created_at, updated_at
			  FROM accounts WHERE number = ?`

	var account accountDomain.Account
	var rowID, rowUserID []byte
	err := querier.QueryRowContext(ctx, query, number).Scan(
		&rowID, &rowUserID, &account.Type, &account.Status, &account.Number,
		&account.BalanceCents, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by number")
	}

	if err := scanAccountIDs(&account, rowID, rowUserID); err != nil {
		return nil, err
	}

	return &account, nil
}

// UpdateBalance sets the account balance
func (r *MySQLAccountRepository) UpdateBalance(
	ctx context.Context,
	id uuid.UUID,
	balanceCents int64,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts SET balance_cents = ?, updated_at = NOW() WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, balanceCents, idBytes)
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

// scanAccountIDs converts BINARY(16) columns back to UUIDs
func scanAccountIDs(account *accountDomain.Account, idBytes, userIDBytes []byte) error {
	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := account.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
