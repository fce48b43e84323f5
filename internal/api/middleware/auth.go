package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/shared"
)

// AuthMiddleware provides JWT bearer authentication for routes. Tokens
// are issued by the surrounding platform; this service only verifies
// them.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates a new AuthMiddleware verifying tokens
// against the given HMAC secret.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	if jwtSecret == "" {
		panic("jwtSecret cannot be empty for AuthMiddleware")
	}
	return &AuthMiddleware{secret: []byte(jwtSecret)}
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the client ID (the token subject) to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return m.secret, nil
			})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
				return
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClientIDContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID extracts the authenticated client ID from the request context.
// Returns the client ID and a boolean indicating if it was found.
func GetClientID(r *http.Request) (string, bool) {
	clientID, ok := r.Context().Value(shared.ClientIDContextKey).(string)
	return clientID, ok && clientID != ""
}
