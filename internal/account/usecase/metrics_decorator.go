package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/meridianfi/banking/internal/account/domain"
	"github.com/meridianfi/banking/internal/metrics"
	txDomain "github.com/meridianfi/banking/internal/transaction/domain"
)

// accountUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateAccount records metrics for account creation operations.
func (a *accountUseCaseWithMetrics) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	input CreateAccountInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.CreateAccount(ctx, userID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "create", status)
	a.metrics.RecordDuration(ctx, "account", "create", time.Since(start), status)

	return account, err
}

// ListAccounts records metrics for account list operations.
func (a *accountUseCaseWithMetrics) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*accountDomain.Account, error) {
	start := time.Now()
	accounts, err := a.next.ListAccounts(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "list", status)
	a.metrics.RecordDuration(ctx, "account", "list", time.Since(start), status)

	return accounts, err
}

// GetAccount records metrics for account retrieval operations.
func (a *accountUseCaseWithMetrics) GetAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.GetAccount(ctx, userID, accountID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "get", status)
	a.metrics.RecordDuration(ctx, "account", "get", time.Since(start), status)

	return account, err
}

// FundAccount records metrics for account funding operations.
func (a *accountUseCaseWithMetrics) FundAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
	input FundAccountInput,
) (*FundAccountOutput, error) {
	start := time.Now()
	output, err := a.next.FundAccount(ctx, userID, accountID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "fund", status)
	a.metrics.RecordDuration(ctx, "account", "fund", time.Since(start), status)

	return output, err
}

// ListTransactions records metrics for transaction list operations.
func (a *accountUseCaseWithMetrics) ListTransactions(
	ctx context.Context,
	userID, accountID uuid.UUID,
) ([]*txDomain.Transaction, error) {
	start := time.Now()
	transactions, err := a.next.ListTransactions(ctx, userID, accountID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "transaction_list", status)
	a.metrics.RecordDuration(ctx, "account", "transaction_list", time.Since(start), status)

	return transactions, err
}
