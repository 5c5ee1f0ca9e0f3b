// Package http provides the HTTP server, routing and middleware for the API.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/meridianfi/banking/internal/account/http"
	authHTTP "github.com/meridianfi/banking/internal/auth/http"
	"github.com/meridianfi/banking/internal/config"
	"github.com/meridianfi/banking/internal/metrics"
)

// Server represents the HTTP server for the API.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	db     *sql.DB
}

// NewServer creates a new HTTP server. The router must be set up with
// SetupRouter before Start is called.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		db:     db,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig holds the handlers and settings needed to build the router.
type RouterConfig struct {
	Config          *config.Config
	AuthHandler     *authHTTP.AuthHandler
	AccountHandler  *accountHTTP.AccountHandler
	Authenticator   authHTTP.SessionAuthenticator
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the Gin router with all middleware and routes.
//
// Global middleware: recovery, request ID, request logging and optional CORS
// and HTTP metrics. The login endpoint additionally gets per-IP rate limiting.
// All /v1/accounts routes and logout require a valid bearer token.
func (s *Server) SetupRouter(rc RouterConfig) {
	gin.SetMode(rc.Config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", rc.AuthHandler.SignupHandler)

	loginHandlers := []gin.HandlerFunc{}
	if rc.Config.RateLimitLoginEnabled {
		loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
			rc.Config.RateLimitLoginRequestsPerSec,
			rc.Config.RateLimitLoginBurst,
			s.logger,
		))
	}
	loginHandlers = append(loginHandlers, rc.AuthHandler.LoginHandler)
	auth.POST("/login", loginHandlers...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(rc.Authenticator, s.logger))

	authenticated.POST("/auth/logout", rc.AuthHandler.LogoutHandler)

	accounts := authenticated.Group("/accounts")
	accounts.POST("", rc.AccountHandler.CreateAccountHandler)
	accounts.GET("", rc.AccountHandler.ListAccountsHandler)
	accounts.GET("/:id", rc.AccountHandler.GetAccountHandler)
	accounts.POST("/:id/fund", rc.AccountHandler.FundAccountHandler)
	accounts.GET("/:id/transactions", rc.AccountHandler.ListTransactionsHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
