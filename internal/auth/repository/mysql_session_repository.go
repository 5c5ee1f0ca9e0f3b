// Package repository provides data persistence implementations for session entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
)

// MySQLSessionRepository handles session persistence for MySQL
type MySQLSessionRepository struct {
	db *sql.DB
}

// NewMySQLSessionRepository creates a new MySQLSessionRepository
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

// Create inserts a new session
func (r *MySQLSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userIDBytes, err := session.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, userIDBytes, session.TokenHash, session.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// GetByTokenHash retrieves a session by its token hash
func (r *MySQLSessionRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, token_hash, expires_at, created_at
			  FROM sessions WHERE token_hash = ?`

	var session authDomain.Session
	var idBytes, userIDBytes []byte
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes, &userIDBytes, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session by token hash")
	}

	// Convert bytes back to UUIDs
	if err := session.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := session.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &session, nil
}

// DeleteByUserID removes all sessions for a user
func (r *MySQLSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM sessions WHERE user_id = ?`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	if _, err := querier.ExecContext(ctx, query, userIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete sessions by user id")
	}
	return nil
}

// DeleteByTokenHash removes the session with the given token hash
func (r *MySQLSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM sessions WHERE token_hash = ?`

	if _, err := querier.ExecContext(ctx, query, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to delete session by token hash")
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns the number removed
func (r *MySQLSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM sessions WHERE expires_at < NOW()`

	result, err := querier.ExecContext(ctx, query)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired sessions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rows, nil
}
