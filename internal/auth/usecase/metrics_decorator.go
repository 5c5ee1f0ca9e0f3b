package usecase

import (
	"context"
	"time"

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
	"github.com/meridianfi/banking/internal/metrics"
)

// authUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := a.next.Logout(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "logout", status)
	a.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), status)

	return err
}

// Authenticate records metrics for token authentication operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	plainToken string,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Authenticate(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return session, err
}

// CleanupExpiredSessions records metrics for session cleanup operations.
func (a *authUseCaseWithMetrics) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := a.next.CleanupExpiredSessions(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "session_cleanup", status)
	a.metrics.RecordDuration(ctx, "auth", "session_cleanup", time.Since(start), status)

	return count, err
}
