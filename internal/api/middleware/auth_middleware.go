package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"shopapi/internal/auth"
	"shopapi/internal/errors"
	repository "shopapi/internal/repositories"
	"shopapi/internal/utils/response"
)

type contextKey string

const UserContextKey = contextKey("user")

type AuthMiddleware struct {
	credentials *auth.Credentials
	users       repository.UserRepository
}

func NewAuthMiddleware(credentials *auth.Credentials, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{credentials: credentials, users: users}
}

// Authenticate resolves the bearer token to a stored user before letting the
// request through. Verification happens on every request, nothing is cached.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))

			return
		}

		// Token is of format: "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))

			return
		}

		claims, err := m.credentials.VerifyToken(tokenParts[1])
		if err != nil {
			logger.Warn("Token verification failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		// The token may outlive its subject.
		if _, err := m.users.GetUserByID(r.Context(), claims.UserID); err != nil {
			logger.Warn("Token subject no longer exists", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.NotFoundError("User not found"))

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
