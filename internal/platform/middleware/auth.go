package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "govos/pkg/domain-errors"
	"govos/pkg/platform/httputil"
)

// SessionTokenValidator validates a bearer token and returns the session it grants.
type SessionTokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims is what the auth middleware needs from a validated token.
type SessionClaims struct {
	SessionID string
	JTI       string
}

type contextKeySessionID struct{}

// GetSessionID retrieves the authenticated session ID from the context.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeySessionID{}).(string)
	return id
}

// WithSessionID stores an authenticated session ID in the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKeySessionID{}, sessionID)
}

// RequireSession admits only requests bearing a valid session token and
// puts the granted session ID on the context.
func RequireSession(validator SessionTokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "session token missing", "request_id", GetRequestID(ctx))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "session token rejected", "error", err, "request_id", GetRequestID(ctx))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(ctx, claims.SessionID)))
		})
	}
}
