package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/joestump/noticeboard/internal/metrics"
)

// BearerTokenMiddleware authenticates requests via a signed Bearer token.
type BearerTokenMiddleware struct {
	tokens *TokenService
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(tokens *TokenService) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: tokens}
}

// Authenticate is an http.Handler middleware that extracts and verifies a Bearer token.
// WHEN valid: injects the token's Identity into context.
// WHEN missing (or not in Bearer form): 401 {"error": "no token"}.
// WHEN malformed, badly signed or expired: 403 {"error": "invalid token"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)

		id, err := m.tokens.Verify(token)
		if err != nil {
			reason := rejectionReason(err)
			metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
			log.Printf("auth: rejected %s %s from %s: %s", r.Method, r.URL.Path, r.RemoteAddr, reason)

			if errors.Is(err, ErrTokenMissing) {
				writeAuthError(w, http.StatusUnauthorized, "no token", "UNAUTHORIZED")
				return
			}
			writeAuthError(w, http.StatusForbidden, "invalid token", "FORBIDDEN")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the token from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return "missing"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}

// writeAuthError writes a JSON error body in the same shape as the api package.
func writeAuthError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}
