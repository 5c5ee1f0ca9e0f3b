// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	authDomain "github.com/meridianfi/banking/internal/auth/domain"
)

// sessionKey is a context key type for storing authenticated sessions.
type sessionKey struct{}

// WithSession stores an authenticated session in the context.
// This is called by the authentication middleware after successful token validation.
func WithSession(ctx context.Context, session *authDomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession retrieves an authenticated session from the context.
// Returns (session, true) if a session is present, or (nil, false) if none was set.
func GetSession(ctx context.Context) (*authDomain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*authDomain.Session)
	return session, ok
}
