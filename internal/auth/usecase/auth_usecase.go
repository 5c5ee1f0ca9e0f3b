// Package usecase implements the authentication business logic and orchestrates session operations.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
	authService "github.com/meridianfi/banking/internal/auth/service"
	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
	userDomain "github.com/meridianfi/banking/internal/user/domain"
)

// LoginOutput carries the result of a successful login. Token is the plain
// bearer token, returned to the client exactly once.
type LoginOutput struct {
	User      *userDomain.User
	Token     string
	ExpiresAt time.Time
}

// UseCase defines the interface for authentication business logic operations
type UseCase interface {
	Login(ctx context.Context, email, password string) (*LoginOutput, error)
	Logout(ctx context.Context, plainToken string) error
	Authenticate(ctx context.Context, plainToken string) (*authDomain.Session, error)
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// UserRepository defines the user lookups needed for authentication
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// SessionRepository defines session repository operations
type SessionRepository interface {
	Create(ctx context.Context, session *authDomain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuthUseCase handles login, logout and bearer token authentication
type AuthUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	sessionRepo    SessionRepository
	tokenService   authService.TokenService
	passwordHasher *pwdhash.PasswordHasher
	sessionTTL     time.Duration
}

// NewAuthUseCase creates a new AuthUseCase
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenService authService.TokenService,
	sessionTTL time.Duration,
) (*AuthUseCase, error) {
	// Must match the policy used when hashing at registration
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &AuthUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
		sessionTTL:     sessionTTL,
	}, nil
}

// Login verifies the credentials and issues a fresh session. Any previous
// sessions for the user are revoked, so at most one session is active per
// user. Lookup failures and password mismatches return the same error.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(password), user.Password)
	if err != nil || !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := uc.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	session := &authDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		return uc.sessionRepo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:      user,
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the session matching the bearer token. Revoking an unknown
// token is not an error; logout is idempotent.
func (uc *AuthUseCase) Logout(ctx context.Context, plainToken string) error {
	tokenHash := uc.tokenService.HashToken(plainToken)
	return uc.sessionRepo.DeleteByTokenHash(ctx, tokenHash)
}

// Authenticate resolves a bearer token to its session. Expired sessions are
// removed on sight and rejected.
func (uc *AuthUseCase) Authenticate(ctx context.Context, plainToken string) (*authDomain.Session, error) {
	tokenHash := uc.tokenService.HashToken(plainToken)

	session, err := uc.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if session.IsExpired() {
		// Best effort cleanup; the session is rejected either way
		_ = uc.sessionRepo.DeleteByTokenHash(ctx, tokenHash)
		return nil, authDomain.ErrSessionExpired
	}

	return session, nil
}

// CleanupExpiredSessions removes all sessions past their expiry and returns
// how many were deleted.
func (uc *AuthUseCase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return uc.sessionRepo.DeleteExpired(ctx)
}
