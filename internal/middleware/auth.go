package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/passionatedev1128/everwell-sub001/internal/utils"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Auth verifies the Bearer JWT and stores claims on the request context
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin callers. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFrom(r.Context()) != "admin" {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom returns the JWT claims stored by Auth
func ClaimsFrom(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	return claims, ok
}

// UserIDFrom returns the authenticated user's ID, or ""
func UserIDFrom(ctx context.Context) string {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return ""
	}
	id, _ := claims["id"].(string)
	return id
}

// RoleFrom returns the authenticated user's role, or ""
func RoleFrom(ctx context.Context) string {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
