package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xnorik/xnorik-backend/internal/auth"
	"github.com/xnorik/xnorik-backend/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	TechnicianContextKey contextKey = "technician"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates JWT tokens and adds technician claims to the
// request context. Public endpoints (tracking, chat, login, register)
// pass through untouched.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		claims, err := m.authService.ValidateToken(authHeader)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), TechnicianContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTechnicianFromContext extracts technician claims from request context
func GetTechnicianFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(TechnicianContextKey).(*models.Claims)
	return claims, ok
}

// shouldSkipAuth determines if authentication should be skipped for a given path
func shouldSkipAuth(path string) bool {
	skipPaths := []string{
		"/api/auth/login",
		"/api/auth/register",
		"/api/chat",
		"/health",
	}

	for _, skipPath := range skipPaths {
		if path == skipPath {
			return true
		}
	}

	// Tracking is the public client-facing surface
	return strings.HasPrefix(path, "/api/track/")
}
