package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/meridianfi/banking/internal/account/domain"
	"github.com/meridianfi/banking/internal/account/http/dto"
	accountUseCase "github.com/meridianfi/banking/internal/account/usecase"
	authDomain "github.com/meridianfi/banking/internal/auth/domain"
	authHTTP "github.com/meridianfi/banking/internal/auth/http"
	txDomain "github.com/meridianfi/banking/internal/transaction/domain"
)

// MockAccountUseCase is a mock implementation of the account use case
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	input accountUseCase.CreateAccountInput,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountUseCase) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*accountDomain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accountDomain.Account), args.Error(1)
}

func (m *MockAccountUseCase) GetAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountUseCase) FundAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
	input accountUseCase.FundAccountInput,
) (*accountUseCase.FundAccountOutput, error) {
	args := m.Called(ctx, userID, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountUseCase.FundAccountOutput), args.Error(1)
}

func (m *MockAccountUseCase) ListTransactions(
	ctx context.Context,
	userID, accountID uuid.UUID,
) ([]*txDomain.Transaction, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*txDomain.Transaction), args.Error(1)
}

// setupTestHandler creates a test handler with a mocked account use case.
func setupTestHandler(t *testing.T) (*AccountHandler, *MockAccountUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockAccountUseCase := &MockAccountUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewAccountHandler(mockAccountUseCase, logger)

	return handler, mockAccountUseCase
}

// createTestContext creates a test Gin context carrying an authenticated session.
func createTestContext(
	method, path string,
	body interface{},
	userID uuid.UUID,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	session := &authDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	req = req.WithContext(authHTTP.WithSession(req.Context(), session))

	c.Request = req
	return c, w
}

func testAccount(userID uuid.UUID) *accountDomain.Account {
	return &accountDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       userID,
		Type:         accountDomain.TypeChecking,
		Status:       accountDomain.StatusActive,
		Number:       "1000000001",
		BalanceCents: 250050,
		CreatedAt:    time.Now(),
	}
}

func TestAccountHandler_CreateAccountHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		account := testAccount(userID)

		mockUC.On("CreateAccount", mock.Anything, userID,
			accountUseCase.CreateAccountInput{Type: "checking"}).Return(account, nil)

		c, w := createTestContext(http.MethodPost, "/v1/accounts",
			dto.CreateAccountRequest{Type: "checking"}, userID)

		handler.CreateAccountHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.AccountResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), response.ID)
		assert.Equal(t, "checking", response.Type)
		assert.Equal(t, "2500.50", response.Balance)

		mockUC.AssertExpectations(t)
	})

	t.Run("Error_MissingSession", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/accounts",
			bytes.NewReader([]byte(`{"type": "checking"}`)))

		handler.CreateAccountHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUC.AssertNotCalled(t, "CreateAccount")
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodPost, "/v1/accounts", nil, userID)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.CreateAccountHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_DuplicateType", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("CreateAccount", mock.Anything, userID, mock.Anything).
			Return(nil, accountDomain.ErrAccountTypeExists)

		c, w := createTestContext(http.MethodPost, "/v1/accounts",
			dto.CreateAccountRequest{Type: "checking"}, userID)

		handler.CreateAccountHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUC.AssertExpectations(t)
	})
}

func TestAccountHandler_ListAccountsHandler(t *testing.T) {
	t.Run("Success_ReturnsAccounts", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		accounts := []*accountDomain.Account{testAccount(userID), testAccount(userID)}

		mockUC.On("ListAccounts", mock.Anything, userID).Return(accounts, nil)

		c, w := createTestContext(http.MethodGet, "/v1/accounts", nil, userID)

		handler.ListAccountsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAccountsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Accounts, 2)

		mockUC.AssertExpectations(t)
	})

	t.Run("Success_EmptyListIsArray", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("ListAccounts", mock.Anything, userID).
			Return([]*accountDomain.Account{}, nil)

		c, w := createTestContext(http.MethodGet, "/v1/accounts", nil, userID)

		handler.ListAccountsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"accounts":[]`)

		mockUC.AssertExpectations(t)
	})
}

func TestAccountHandler_GetAccountHandler(t *testing.T) {
	t.Run("Success_ReturnsAccount", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		account := testAccount(userID)

		mockUC.On("GetAccount", mock.Anything, userID, account.ID).Return(account, nil)

		c, w := createTestContext(http.MethodGet, "/v1/accounts/"+account.ID.String(), nil, userID)
		c.Params = gin.Params{{Key: "id", Value: account.ID.String()}}

		handler.GetAccountHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.AccountResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), response.ID)

		mockUC.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodGet, "/v1/accounts/not-a-uuid", nil, userID)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		handler.GetAccountHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "GetAccount")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())

		mockUC.On("GetAccount", mock.Anything, userID, accountID).
			Return(nil, accountDomain.ErrAccountNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/accounts/"+accountID.String(), nil, userID)
		c.Params = gin.Params{{Key: "id", Value: accountID.String()}}

		handler.GetAccountHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUC.AssertExpectations(t)
	})
}

func TestAccountHandler_FundAccountHandler(t *testing.T) {
	t.Run("Success_CardFunding", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		account := testAccount(userID)
		transaction := &txDomain.Transaction{
			ID:          uuid.Must(uuid.NewV7()),
			AccountID:   account.ID,
			Type:        txDomain.TypeDeposit,
			Status:      txDomain.StatusCompleted,
			AmountCents: 10050,
			Description: "Card funding",
			CreatedAt:   time.Now(),
		}

		request := dto.FundAccountRequest{
			Amount:      "100.50",
			Source:      "card",
			CardNumber:  "4111111111111111",
			Description: "Card funding",
		}

		mockUC.On("FundAccount", mock.Anything, userID, account.ID,
			mock.MatchedBy(func(input accountUseCase.FundAccountInput) bool {
				return input.Amount == "100.50" && input.Source == "card"
			})).Return(&accountUseCase.FundAccountOutput{
			Account:     account,
			Transaction: transaction,
		}, nil)

		c, w := createTestContext(http.MethodPost, "/v1/accounts/"+account.ID.String()+"/fund",
			request, userID)
		c.Params = gin.Params{{Key: "id", Value: account.ID.String()}}

		handler.FundAccountHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.FundAccountResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), response.Account.ID)
		assert.Equal(t, "100.50", response.Transaction.Amount)
		assert.Equal(t, "deposit", response.Transaction.Type)

		mockUC.AssertExpectations(t)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())

		mockUC.On("FundAccount", mock.Anything, userID, accountID, mock.Anything).
			Return(nil, accountDomain.ErrAccountNotActive)

		request := dto.FundAccountRequest{Amount: "100.50", Source: "card"}
		c, w := createTestContext(http.MethodPost, "/v1/accounts/"+accountID.String()+"/fund",
			request, userID)
		c.Params = gin.Params{{Key: "id", Value: accountID.String()}}

		handler.FundAccountHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUC.AssertExpectations(t)
	})

	t.Run("Error_InvalidAccountID", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodPost, "/v1/accounts/abc/fund",
			dto.FundAccountRequest{Amount: "100.50", Source: "card"}, userID)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		handler.FundAccountHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "FundAccount")
	})
}

func TestAccountHandler_ListTransactionsHandler(t *testing.T) {
	t.Run("Success_ReturnsTransactions", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())
		transactions := []*txDomain.Transaction{
			{
				ID:          uuid.Must(uuid.NewV7()),
				AccountID:   accountID,
				Type:        txDomain.TypeDeposit,
				Status:      txDomain.StatusCompleted,
				AmountCents: 10000,
				CreatedAt:   time.Now(),
			},
		}

		mockUC.On("ListTransactions", mock.Anything, userID, accountID).
			Return(transactions, nil)

		c, w := createTestContext(http.MethodGet,
			"/v1/accounts/"+accountID.String()+"/transactions", nil, userID)
		c.Params = gin.Params{{Key: "id", Value: accountID.String()}}

		handler.ListTransactionsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListTransactionsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Transactions, 1)
		assert.Equal(t, "100.00", response.Transactions[0].Amount)

		mockUC.AssertExpectations(t)
	})

	t.Run("Error_AccountNotOwned", func(t *testing.T) {
		handler, mockUC := setupTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())

		mockUC.On("ListTransactions", mock.Anything, userID, accountID).
			Return(nil, accountDomain.ErrAccountNotFound)

		c, w := createTestContext(http.MethodGet,
			"/v1/accounts/"+accountID.String()+"/transactions", nil, userID)
		c.Params = gin.Params{{Key: "id", Value: accountID.String()}}

		handler.ListTransactionsHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUC.AssertExpectations(t)
	})
}
