package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/meridianfi/banking/internal/errors"
	outboxDomain "github.com/meridianfi/banking/internal/outbox/domain"
	"github.com/meridianfi/banking/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockOutboxEventRepository is a mock implementation of repository.OutboxEventRepository
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*outboxDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outboxDomain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSensitiveEncryptor is a mock implementation of SensitiveEncryptor
type MockSensitiveEncryptor struct {
	mock.Mock
}

func (m *MockSensitiveEncryptor) Encrypt(value string) (string, error) {
	args := m.Called(value)
	return args.String(0), args.Error(1)
}

func validRegisterInput() RegisterUserInput {
	return RegisterUserInput{
		Email:       "john@example.com",
		Password:    "SuperSecurePass1!",
		FirstName:   "John",
		LastName:    "Doe",
		PhoneNumber: "+12025550143",
		DateOfBirth: "1990-05-20",
		SSN:         "123456789",
		Address:     "1 Main St",
		City:        "Austin",
		State:       "TX",
		ZipCode:     "78701",
	}
}

func TestNewUserUseCase(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)
	assert.NotNil(t, useCase)
}

func TestUserUseCase_RegisterUser_Success(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	input := validRegisterInput()

	encryptor.On("Encrypt", input.SSN).Return("nonce:tag:ciphertext", nil)
	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

	user, err := useCase.RegisterUser(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, input.Email, user.Email)
	assert.Equal(t, input.FirstName, user.FirstName)
	assert.Equal(t, "nonce:tag:ciphertext", user.EncryptedSSN)
	assert.NotEmpty(t, user.Password)
	assert.NotEqual(t, input.Password, user.Password) // Password should be hashed

	txManager.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	encryptor.AssertExpectations(t)
}

func TestUserUseCase_RegisterUser_NormalizesEmailAndPhone(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	input := validRegisterInput()
	input.Email = "John@Example.com"
	input.PhoneNumber = "+1 (202) 555-0143"

	encryptor.On("Encrypt", input.SSN).Return("payload", nil)
	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

	user, err := useCase.RegisterUser(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.Equal(t, "+12025550143", user.PhoneNumber)
}

func TestUserUseCase_RegisterUser_ValidationErrors(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(input *RegisterUserInput)
	}{
		{"invalid email", func(i *RegisterUserInput) { i.Email = "john@@example.com" }},
		{"weak password", func(i *RegisterUserInput) { i.Password = "short" }},
		{"bad state code", func(i *RegisterUserInput) { i.State = "XX" }},
		{"underage", func(i *RegisterUserInput) { i.DateOfBirth = "2020-01-01" }},
		{"bad ssn", func(i *RegisterUserInput) { i.SSN = "12345" }},
		{"bad zip", func(i *RegisterUserInput) { i.ZipCode = "1234" }},
		{"bad phone", func(i *RegisterUserInput) { i.PhoneNumber = "abc" }},
		{"missing first name", func(i *RegisterUserInput) { i.FirstName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegisterInput()
			tt.mutate(&input)

			user, err := useCase.RegisterUser(ctx, input)
			assert.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}

	// No repository calls should have been made
	userRepo.AssertNotCalled(t, "Create")
	outboxRepo.AssertNotCalled(t, "Create")
}

func TestUserUseCase_RegisterUser_CreateUserError(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	input := validRegisterInput()

	encryptor.On("Encrypt", input.SSN).Return("payload", nil)
	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrUserAlreadyExists)

	user, err := useCase.RegisterUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, domain.ErrUserAlreadyExists))

	txManager.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUserUseCase_RegisterUser_EncryptError(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	input := validRegisterInput()

	encryptor.On("Encrypt", input.SSN).Return("", errors.New("cipher failure"))

	user, err := useCase.RegisterUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "failed to encrypt ssn")

	userRepo.AssertNotCalled(t, "Create")
}

func TestUserUseCase_RegisterUser_VerifyOutboxPayload(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	input := validRegisterInput()

	encryptor.On("Encrypt", input.SSN).Return("payload", nil)
	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	// Capture the outbox event to verify its payload
	var capturedEvent *outboxDomain.OutboxEvent
	outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).
		Run(func(args mock.Arguments) {
			capturedEvent = args.Get(1).(*outboxDomain.OutboxEvent)
		}).
		Return(nil)

	user, err := useCase.RegisterUser(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotNil(t, capturedEvent)
	assert.Equal(t, "user.created", capturedEvent.EventType)
	assert.Equal(t, outboxDomain.OutboxEventStatusPending, capturedEvent.Status)
	assert.Equal(t, 0, capturedEvent.Retries)

	// The payload must never carry the SSN, even encrypted
	var payload map[string]interface{}
	err = json.Unmarshal([]byte(capturedEvent.Payload), &payload)
	assert.NoError(t, err)
	assert.Equal(t, input.Email, payload["email"])
	assert.NotNil(t, payload["user_id"])
	assert.NotContains(t, capturedEvent.Payload, input.SSN)

	txManager.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestUserUseCase_GetUserByEmail(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	uuid1 := uuid.Must(uuid.NewV7())
	expectedUser := &domain.User{
		ID:    uuid1,
		Email: "john@example.com",
	}

	userRepo.On("GetByEmail", ctx, "john@example.com").Return(expectedUser, nil)

	user, err := useCase.GetUserByEmail(ctx, "John@Example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, expectedUser.ID, user.ID)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_GetUserByID_NotFound(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	outboxRepo := &MockOutboxEventRepository{}
	encryptor := &MockSensitiveEncryptor{}

	useCase, err := NewUserUseCase(txManager, userRepo, outboxRepo, encryptor)
	require.NoError(t, err)

	ctx := context.Background()
	notFoundUUID := uuid.Must(uuid.NewV7())

	userRepo.On("GetByID", ctx, notFoundUUID).Return(nil, domain.ErrUserNotFound)

	user, err := useCase.GetUserByID(ctx, notFoundUUID)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, domain.ErrUserNotFound))

	userRepo.AssertExpectations(t)
}
