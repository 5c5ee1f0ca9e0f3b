package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridianfi/banking/internal/auth/http/dto"
	authUseCase "github.com/meridianfi/banking/internal/auth/usecase"
	"github.com/meridianfi/banking/internal/httputil"
	userUseCase "github.com/meridianfi/banking/internal/user/usecase"
	customValidation "github.com/meridianfi/banking/internal/validation"
)

// AuthHandler handles HTTP requests for signup, login and logout.
type AuthHandler struct {
	userUseCase userUseCase.UseCase
	authUseCase authUseCase.UseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	userUC userUseCase.UseCase,
	authUC authUseCase.UseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userUseCase: userUC,
		authUseCase: authUC,
		logger:      logger,
	}
}

// SignupHandler registers a new user.
// POST /v1/auth/signup - No authentication required.
// Returns 201 Created with the new user.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := userUseCase.RegisterUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// LoginHandler authenticates a user and issues a bearer token.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with the token and user.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      dto.NewUserResponse(output.User),
	}

	c.JSON(http.StatusOK, response)
}

// LogoutHandler revokes the session of the presented bearer token.
// POST /v1/auth/logout - Requires authentication.
// Returns 204 No Content; logout is idempotent.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	plainToken, ok := bearerToken(c)
	if !ok {
		// AuthenticationMiddleware already rejected the request in this case
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
