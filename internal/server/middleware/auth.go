// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// subjectKey is the context key for the authenticated caller.
const subjectKey ContextKey = "subject"

// APIKeyHeader carries a service API key as an alternative to a bearer token.
const APIKeyHeader = "X-API-Key"

// APIKeySubject is the subject recorded for callers authenticated by API key.
const APIKeySubject = "api-key"

// TokenValidator validates a bearer token and returns its subject.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// KeyVerifier checks a service API key.
type KeyVerifier interface {
	Verify(key string) bool
}

// AuthMiddleware admits requests carrying a valid API key or bearer token and
// stores the caller's subject in the request context. A nil collaborator
// disables that credential type.
func AuthMiddleware(tokens TokenValidator, keys KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := authenticate(r, tokens, keys)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, tokens TokenValidator, keys KeyVerifier) (string, bool) {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		if keys != nil && keys.Verify(key) {
			return APIKeySubject, true
		}
		return "", false
	}

	if tokens == nil {
		return "", false
	}

	// Bearer prefix is case-insensitive
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	subject, err := tokens.ValidateToken(parts[1])
	if err != nil || subject == "" {
		return "", false
	}
	return subject, true
}

// GetSubject extracts the authenticated subject from the request context.
func GetSubject(r *http.Request) (string, error) {
	subject, ok := r.Context().Value(subjectKey).(string)
	if !ok {
		return "", fmt.Errorf("subject not found in request context")
	}
	return subject, nil
}
