package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ardelio/heart-risk-api/internal/api/response"
	"github.com/ardelio/heart-risk-api/internal/security"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	tokens *security.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// bearerToken extracts the credential from the Authorization header.
// Returns "" when no credential is present.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}

// RequireAuth rejects requests without a valid token. It either halts
// with 401 or calls the next handler exactly once with the identity
// attached to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w, "No token provided. Please log in.")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token. Please log in again.")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise continues anonymously. It never writes a response and always
// calls the next handler exactly once.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := m.tokens.Verify(token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, claims *security.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, UserEmailKey, claims.Email)
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
