package middleware

import (
	"net/http"
	"strings"

	"github.com/iho/cnabrecon/internal/infrastructure/auth"
)

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthFailureRecorder counts rejected requests by reason.
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware creates an authentication middleware. failures may be nil.
func AuthMiddleware(jwtManager *auth.JWTManager, failures AuthFailureRecorder) func(http.Handler) http.Handler {
	reject := func(w http.ResponseWriter, reason, message string) {
		if failures != nil {
			failures.RecordAuthFailure(reason)
		}
		http.Error(w, message, http.StatusUnauthorized)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				reject(w, "missing_header", "missing authorization header")
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				reject(w, "malformed_header", "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(token)
			if err != nil {
				reject(w, "invalid_token", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole creates a middleware that checks for a minimum role
func RequireRole(minRole auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !claims.Role.Allows(minRole) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth is a middleware that extracts claims if present but doesn't require them
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := jwtManager.Verify(token); err == nil {
					next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
					return
				}
			}

			// Invalid auth, but don't fail - just continue without claims
			next.ServeHTTP(w, r)
		})
	}
}
