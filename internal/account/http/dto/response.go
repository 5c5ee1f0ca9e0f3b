package dto

import (
	"fmt"
	"time"

	accountDomain "github.com/meridianfi/banking/internal/account/domain"
	txDomain "github.com/meridianfi/banking/internal/transaction/domain"
)

// AccountResponse is the public representation of an account. Balance is a
// decimal dollar string derived from the stored cent amount.
type AccountResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Number    string    `json:"number"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps an account domain entity to its public representation.
func NewAccountResponse(account *accountDomain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Type:      string(account.Type),
		Status:    string(account.Status),
		Number:    account.Number,
		Balance:   centsToDecimal(account.BalanceCents),
		CreatedAt: account.CreatedAt,
	}
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// NewListAccountsResponse maps a slice of accounts. The accounts field is
// always a JSON array, never null.
func NewListAccountsResponse(accounts []*accountDomain.Account) ListAccountsResponse {
	out := ListAccountsResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		out.Accounts = append(out.Accounts, NewAccountResponse(account))
	}
	return out
}

// TransactionResponse is the public representation of a transaction.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTransactionResponse maps a transaction domain entity to its public representation.
func NewTransactionResponse(tx *txDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Type:        string(tx.Type),
		Status:      string(tx.Status),
		Amount:      centsToDecimal(tx.AmountCents),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// NewListTransactionsResponse maps a slice of transactions. The transactions
// field is always a JSON array, never null.
func NewListTransactionsResponse(transactions []*txDomain.Transaction) ListTransactionsResponse {
	out := ListTransactionsResponse{Transactions: make([]TransactionResponse, 0, len(transactions))}
	for _, tx := range transactions {
		out.Transactions = append(out.Transactions, NewTransactionResponse(tx))
	}
	return out
}

// FundAccountResponse carries the deposit transaction and the updated account.
type FundAccountResponse struct {
	Account     AccountResponse     `json:"account"`
	Transaction TransactionResponse `json:"transaction"`
}

// centsToDecimal renders a cent amount as a dollar string with two fraction digits.
func centsToDecimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
