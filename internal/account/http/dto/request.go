// Package dto defines request and response shapes for the account HTTP API.
package dto

// CreateAccountRequest is the payload for opening a new account.
type CreateAccountRequest struct {
	Type string `json:"type"`
}

// FundAccountRequest is the payload for depositing money into an account.
// Amount is a canonical decimal string such as "100.50". CardNumber is
// required when Source is "card"; RoutingNumber and AccountNumber when Source
// is "bank".
type FundAccountRequest struct {
	Amount        string `json:"amount"`
	Source        string `json:"source"`
	CardNumber    string `json:"card_number"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
	Description   string `json:"description"`
}
