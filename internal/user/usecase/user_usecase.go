// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/meridianfi/banking/internal/database"
	apperrors "github.com/meridianfi/banking/internal/errors"
	outboxDomain "github.com/meridianfi/banking/internal/outbox/domain"
	"github.com/meridianfi/banking/internal/user/domain"
	appValidation "github.com/meridianfi/banking/internal/validation"
)

var (
	zipCodeRegex = regexp.MustCompile(`^\d{5}$`)
	ssnRegex     = regexp.MustCompile(`^\d{9}$`)
)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	SSN         string `json:"ssn"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OutboxEventRepository interface defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*outboxDomain.OutboxEvent, error)
	Update(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// SensitiveEncryptor encrypts sensitive fields before persistence
type SensitiveEncryptor interface {
	Encrypt(value string) (string, error)
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	outboxRepo     OutboxEventRepository
	encryptor      SensitiveEncryptor
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	outboxRepo OutboxEventRepository,
	encryptor SensitiveEncryptor,
) (UseCase, error) {
	// Interactive policy keeps login latency acceptable for user-facing auth
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		outboxRepo:     outboxRepo,
		encryptor:      encryptor,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterUserInput validates the registration input using jellydator/validation
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.EmailRule,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordRule,
		),
		validation.Field(&input.FirstName,
			validation.Required.Error("first name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("first name must be between 1 and 255 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("last name must be between 1 and 255 characters"),
		),
		validation.Field(&input.PhoneNumber,
			validation.Required.Error("phone number is required"),
			appValidation.PhoneNumberRule,
		),
		validation.Field(&input.DateOfBirth,
			validation.Required.Error("date of birth is required"),
			appValidation.DateOfBirthRule,
		),
		validation.Field(&input.SSN,
			validation.Required.Error("ssn is required"),
			validation.Match(ssnRegex).Error("SSN must be 9 digits"),
		),
		validation.Field(&input.Address,
			validation.Required.Error("address is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("address must be between 1 and 255 characters"),
		),
		validation.Field(&input.City,
			validation.Required.Error("city is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("city must be between 1 and 255 characters"),
		),
		validation.Field(&input.State,
			validation.Required.Error("state is required"),
			appValidation.StateCodeRule,
		),
		validation.Field(&input.ZipCode,
			validation.Required.Error("zip code is required"),
			validation.Match(zipCodeRegex).Error("ZIP code must be 5 digits"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user and creates a user.created event.
// The SSN is encrypted before it reaches the repository; the plaintext is
// never persisted or logged.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	encryptedSSN, err := uc.encryptor.Encrypt(input.SSN)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt ssn")
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		Password:     hashedPassword,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PhoneNumber:  appValidation.NormalizePhoneNumber(input.PhoneNumber),
		DateOfBirth:  input.DateOfBirth,
		EncryptedSSN: encryptedSSN,
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		State:        strings.ToUpper(strings.TrimSpace(input.State)),
		ZipCode:      input.ZipCode,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}

		eventPayload := map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		}
		payloadJSON, err := json.Marshal(eventPayload)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal event payload")
		}

		outboxEvent := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: "user.created",
			Payload:   string(payloadJSON),
			Status:    outboxDomain.OutboxEventStatusPending,
			Retries:   0,
		}

		if err := uc.outboxRepo.Create(ctx, outboxEvent); err != nil {
			return apperrors.Wrap(err, "failed to create outbox event")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
