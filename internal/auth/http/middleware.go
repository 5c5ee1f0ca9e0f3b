package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
	apperrors "github.com/meridianfi/banking/internal/errors"
	"github.com/meridianfi/banking/internal/httputil"
)

// SessionAuthenticator resolves a plain bearer token to a session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, plainToken string) (*authDomain.Session, error)
}

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The header format is "Bearer <token>" with a case-insensitive prefix. The
// token is resolved to a session and the session is stored in the request
// context for downstream handlers via GetSession().
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked token → 401 Unauthorized
func AuthenticationMiddleware(
	authUseCase SessionAuthenticator,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		session, err := authUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", session.UserID.String()))

		c.Next()
	}
}

// bearerToken extracts the bearer token from the Authorization header.
// Returns ("", false) when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	plainToken := authHeader[len(bearerPrefix):]
	if plainToken == "" {
		return "", false
	}
	return plainToken, true
}
