package http

import (
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

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
)

func setupAuthMiddlewareRouter(authenticator SessionAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(AuthenticationMiddleware(authenticator, logger))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	session := &authDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    uuid.Must(uuid.NewV7()),
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mockAuthUC := &MockAuthUseCase{}
	mockAuthUC.On("Authenticate", mock.Anything, "tok_valid").Return(session, nil)

	var captured *authDomain.Session
	router := gin.New()
	router.Use(AuthenticationMiddleware(mockAuthUC, logger))
	router.GET("/protected", func(c *gin.Context) {
		if s, ok := GetSession(c.Request.Context()); ok {
			captured = s
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok_valid")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, captured)
	assert.Equal(t, session.UserID, captured.UserID)
	mockAuthUC.AssertExpectations(t)
}

func TestAuthenticationMiddleware_MissingHeader(t *testing.T) {
	mockAuthUC := &MockAuthUseCase{}
	router := setupAuthMiddlewareRouter(mockAuthUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthUC.AssertNotCalled(t, "Authenticate")
}

func TestAuthenticationMiddleware_MalformedHeader(t *testing.T) {
	mockAuthUC := &MockAuthUseCase{}
	router := setupAuthMiddlewareRouter(mockAuthUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthUC.AssertNotCalled(t, "Authenticate")
}

func TestAuthenticationMiddleware_InvalidToken(t *testing.T) {
	mockAuthUC := &MockAuthUseCase{}
	mockAuthUC.On("Authenticate", mock.Anything, "tok_invalid").
		Return(nil, authDomain.ErrInvalidToken)

	router := setupAuthMiddlewareRouter(mockAuthUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok_invalid")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthUC.AssertExpectations(t)
}

func TestAuthenticationMiddleware_ExpiredSession(t *testing.T) {
	mockAuthUC := &MockAuthUseCase{}
	mockAuthUC.On("Authenticate", mock.Anything, "tok_expired").
		Return(nil, authDomain.ErrSessionExpired)

	router := setupAuthMiddlewareRouter(mockAuthUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok_expired")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthUC.AssertExpectations(t)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{
			name:      "ValidBearer",
			header:    "Bearer tok_abc123",
			wantToken: "tok_abc123",
			wantOK:    true,
		},
		{
			name:      "CaseInsensitivePrefix",
			header:    "bearer tok_abc123",
			wantToken: "tok_abc123",
			wantOK:    true,
		},
		{
			name:   "MissingHeader",
			header: "",
			wantOK: false,
		},
		{
			name:   "EmptyToken",
			header: "Bearer ",
			wantOK: false,
		},
		{
			name:   "WrongScheme",
			header: "Basic dXNlcjpwYXNz",
			wantOK: false,
		},
		{
			name:   "TokenOnly",
			header: "tok_abc123",
			wantOK: false,
		},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, ok := bearerToken(c)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("AllowsRequestsWithinBurst", func(t *testing.T) {
		router := gin.New()
		router.Use(LoginRateLimitMiddleware(1, 3, logger))
		router.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.RemoteAddr = "10.0.0.1:12345"
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("RejectsRequestsOverBurst", func(t *testing.T) {
		router := gin.New()
		router.Use(LoginRateLimitMiddleware(0.1, 2, logger))
		router.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.RemoteAddr = "10.0.0.2:12345"
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.2:12345"
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("TracksIPsIndependently", func(t *testing.T) {
		router := gin.New()
		router.Use(LoginRateLimitMiddleware(0.1, 1, logger))
		router.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// First IP exhausts its bucket
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.3:12345"
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.3:12345"
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		// A different IP still gets through
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.4:12345"
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
