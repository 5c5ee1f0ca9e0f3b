// Package http provides HTTP handlers for account operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/account/http/dto"
	accountUseCase "github.com/meridianfi/banking/internal/account/usecase"
	authHTTP "github.com/meridianfi/banking/internal/auth/http"
	apperrors "github.com/meridianfi/banking/internal/errors"
	"github.com/meridianfi/banking/internal/httputil"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accountUseCase accountUseCase.UseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(
	accountUC accountUseCase.UseCase,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUC,
		logger:         logger,
	}
}

// CreateAccountHandler opens a new account for the authenticated user.
// POST /v1/accounts - Requires authentication.
// Returns 201 Created with the new account.
func (h *AccountHandler) CreateAccountHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	account, err := h.accountUseCase.CreateAccount(c.Request.Context(), session.UserID,
		accountUseCase.CreateAccountInput{Type: req.Type})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(account))
}

// ListAccountsHandler lists the authenticated user's accounts.
// GET /v1/accounts - Requires authentication.
func (h *AccountHandler) ListAccountsHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	accounts, err := h.accountUseCase.ListAccounts(c.Request.Context(), session.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewListAccountsResponse(accounts))
}

// GetAccountHandler retrieves one of the authenticated user's accounts.
// GET /v1/accounts/:id - Requires authentication.
func (h *AccountHandler) GetAccountHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	account, err := h.accountUseCase.GetAccount(c.Request.Context(), session.UserID, accountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// FundAccountHandler deposits money into one of the authenticated user's accounts.
// POST /v1/accounts/:id/fund - Requires authentication.
// Returns 201 Created with the transaction and updated account.
func (h *AccountHandler) FundAccountHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.FundAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := accountUseCase.FundAccountInput{
		Amount:        req.Amount,
		Source:        req.Source,
		CardNumber:    req.CardNumber,
		RoutingNumber: req.RoutingNumber,
		AccountNumber: req.AccountNumber,
		Description:   req.Description,
	}

	output, err := h.accountUseCase.FundAccount(c.Request.Context(), session.UserID, accountID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.FundAccountResponse{
		Account:     dto.NewAccountResponse(output.Account),
		Transaction: dto.NewTransactionResponse(output.Transaction),
	}

	c.JSON(http.StatusCreated, response)
}

// ListTransactionsHandler lists recent transactions for one of the
// authenticated user's accounts.
// GET /v1/accounts/:id/transactions - Requires authentication.
func (h *AccountHandler) ListTransactionsHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	transactions, err := h.accountUseCase.ListTransactions(c.Request.Context(), session.UserID, accountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewListTransactionsResponse(transactions))
}
