// Package usecase implements the account business logic and orchestrates account domain operations.
package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	accountDomain "github.com/meridianfi/banking/internal/account/domain"
	accountService "github.com/meridianfi/banking/internal/account/service"
	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
	outboxDomain "github.com/meridianfi/banking/internal/outbox/domain"
	txDomain "github.com/meridianfi/banking/internal/transaction/domain"
	txService "github.com/meridianfi/banking/internal/transaction/service"
	appValidation "github.com/meridianfi/banking/internal/validation"
)

// FundingSource identifies where funding money comes from
type FundingSource string

const (
	FundingSourceCard FundingSource = "card"
	FundingSourceBank FundingSource = "bank"
)

// defaultTransactionLimit bounds transaction listings per request.
const defaultTransactionLimit = 50

// CreateAccountInput contains the input data for opening an account
type CreateAccountInput struct {
	Type string `json:"type"`
}

// FundAccountInput contains the input data for funding an account. Amount is a
// canonical decimal string; card and bank fields are required depending on Source.
type FundAccountInput struct {
	Amount        string `json:"amount"`
	Source        string `json:"source"`
	CardNumber    string `json:"card_number"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
	Description   string `json:"description"`
}

// FundAccountOutput carries the result of a funding operation
type FundAccountOutput struct {
	Account     *accountDomain.Account
	Transaction *txDomain.Transaction
}

// UseCase defines the interface for account business logic operations
type UseCase interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, input CreateAccountInput) (*accountDomain.Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*accountDomain.Account, error)
	GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*accountDomain.Account, error)
	FundAccount(ctx context.Context, userID, accountID uuid.UUID, input FundAccountInput) (*FundAccountOutput, error)
	ListTransactions(ctx context.Context, userID, accountID uuid.UUID) ([]*txDomain.Transaction, error)
}

// AccountRepository defines account repository operations
type AccountRepository interface {
	Create(ctx context.Context, account *accountDomain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*accountDomain.Account, error)
	GetByUserIDAndType(ctx context.Context, userID uuid.UUID, accountType accountDomain.Type) (*accountDomain.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balanceCents int64) error
}

// TransactionRepository defines transaction repository operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *txDomain.Transaction) error
	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]*txDomain.Transaction, error)
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// AccountUseCase handles account-related business logic
type AccountUseCase struct {
	txManager       database.TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxEventRepository
	numberGenerator accountService.NumberGenerator
	maxAttempts     int
}

// NewAccountUseCase creates a new AccountUseCase
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxEventRepository,
	numberGenerator accountService.NumberGenerator,
	maxAttempts int,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		numberGenerator: numberGenerator,
		maxAttempts:     maxAttempts,
	}
}

// CreateAccount opens a new account of the given type. Each user may hold at
// most one account per type. The account number is drawn from the generator
// and retried on collision up to the configured attempt budget.
func (uc *AccountUseCase) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	input CreateAccountInput,
) (*accountDomain.Account, error) {
	accountType := accountDomain.Type(strings.ToLower(strings.TrimSpace(input.Type)))
	if !accountType.IsValid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "account type must be checking or savings")
	}

	// Friendly pre-check; the unique constraint on (user_id, type) is the
	// backstop against concurrent requests.
	_, err := uc.accountRepo.GetByUserIDAndType(ctx, userID, accountType)
	if err == nil {
		return nil, accountDomain.ErrAccountTypeExists
	}
	if !apperrors.Is(err, accountDomain.ErrAccountNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		number, err := uc.numberGenerator.Generate()
		if err != nil {
			return nil, err
		}

		account := &accountDomain.Account{
			ID:           uuid.Must(uuid.NewV7()),
			UserID:       userID,
			Type:         accountType,
			Status:       accountDomain.StatusActive,
			Number:       number,
			BalanceCents: 0,
		}

		err = uc.accountRepo.Create(ctx, account)
		if err == nil {
			return account, nil
		}
		if apperrors.Is(err, accountDomain.ErrNumberTaken) {
			continue
		}
		return nil, err
	}

	return nil, accountDomain.ErrNumberExhausted
}

// ListAccounts retrieves all accounts owned by the user
func (uc *AccountUseCase) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*accountDomain.Account, error) {
	return uc.accountRepo.ListByUserID(ctx, userID)
}

// GetAccount retrieves one of the user's accounts. Accounts owned by other
// users are reported as not found rather than forbidden.
func (uc *AccountUseCase) GetAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (*accountDomain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, accountDomain.ErrAccountNotFound
	}
	return account, nil
}

// validateFundAccountInput validates the funding input using jellydator/validation.
// Card details are required for card funding, routing and account number for
// bank funding.
func (uc *AccountUseCase) validateFundAccountInput(input FundAccountInput) error {
	source := FundingSource(strings.ToLower(strings.TrimSpace(input.Source)))

	fields := []*validation.FieldRules{
		validation.Field(&input.Amount,
			validation.Required.Error("amount is required"),
			appValidation.AmountRule,
		),
		validation.Field(&input.Source,
			validation.Required.Error("source is required"),
			validation.In("card", "bank").Error("source must be card or bank"),
		),
	}

	switch source {
	case FundingSourceCard:
		fields = append(fields,
			validation.Field(&input.CardNumber,
				validation.Required.Error("card number is required"),
				appValidation.CardNumberRule,
			),
		)
	case FundingSourceBank:
		fields = append(fields,
			validation.Field(&input.RoutingNumber,
				validation.Required.Error("routing number is required"),
				appValidation.RoutingNumberRule,
			),
			validation.Field(&input.AccountNumber,
				validation.Required.Error("account number is required"),
				appValidation.BankAccountNumberRule,
			),
		)
	}

	return appValidation.WrapValidationError(validation.ValidateStruct(&input, fields...))
}

// FundAccount deposits money into an active account owned by the user. The
// deposit transaction, the balance update and the account.funded event commit
// in a single database transaction.
func (uc *AccountUseCase) FundAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
	input FundAccountInput,
) (*FundAccountOutput, error) {
	if err := uc.validateFundAccountInput(input); err != nil {
		return nil, err
	}

	amountCents, err := amountToCents(input.Amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "Invalid amount")
	}

	source := FundingSource(strings.ToLower(strings.TrimSpace(input.Source)))

	description := txService.SanitizeDescription(input.Description)
	if description == txService.EmptyDescription {
		switch source {
		case FundingSourceCard:
			description = "Funding from card"
		case FundingSourceBank:
			description = "Funding from bank"
		}
	}

	var output FundAccountOutput
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		account, err := uc.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account.UserID != userID {
			return accountDomain.ErrAccountNotFound
		}
		if account.Status != accountDomain.StatusActive {
			return accountDomain.ErrAccountNotActive
		}

		transaction := &txDomain.Transaction{
			ID:          uuid.Must(uuid.NewV7()),
			AccountID:   account.ID,
			Type:        txDomain.TypeDeposit,
			Status:      txDomain.StatusCompleted,
			AmountCents: amountCents,
			Description: description,
		}
		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return err
		}

		newBalance := account.BalanceCents + amountCents
		if err := uc.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return err
		}
		account.BalanceCents = newBalance

		eventPayload := map[string]interface{}{
			"account_id":     account.ID,
			"transaction_id": transaction.ID,
			"amount_cents":   amountCents,
			"source":         source,
		}
		payloadJSON, err := json.Marshal(eventPayload)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal event payload")
		}

		outboxEvent := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: "account.funded",
			Payload:   string(payloadJSON),
			Status:    outboxDomain.OutboxEventStatusPending,
			Retries:   0,
		}
		if err := uc.outboxRepo.Create(ctx, outboxEvent); err != nil {
			return apperrors.Wrap(err, "failed to create outbox event")
		}

		output.Account = account
		output.Transaction = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &output, nil
}

// ListTransactions retrieves the most recent transactions for one of the
// user's accounts
func (uc *AccountUseCase) ListTransactions(
	ctx context.Context,
	userID, accountID uuid.UUID,
) ([]*txDomain.Transaction, error) {
	if _, err := uc.GetAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	return uc.transactionRepo.ListByAccountID(ctx, accountID, defaultTransactionLimit)
}

// amountToCents converts a canonical decimal amount string to cents without
// going through floating point. The string must already have passed amount
// validation.
func amountToCents(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)

	whole, frac, _ := strings.Cut(trimmed, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}

	cents := int64(0)
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, err
		}
	}

	return dollars*100 + cents, nil
}
