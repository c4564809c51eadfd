package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTokenValidator map[string]string

func (v testTokenValidator) ValidateToken(token string) (string, error) {
	if sub, ok := v[token]; ok {
		return sub, nil
	}
	return "", fmt.Errorf("invalid token")
}

type testKeys string

func (k testKeys) Verify(key string) bool { return key == string(k) }

func protected(t *testing.T, tokens TokenValidator, keys KeyVerifier) http.Handler {
	t.Helper()
	return AuthMiddleware(tokens, keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := GetSubject(r)
		require.NoError(t, err)
		_, _ = w.Write([]byte(sub))
	}))
}

func TestAuthMiddleware(t *testing.T) {
	tokens := testTokenValidator{"good-token": "user-123"}
	keys := testKeys("service-key")

	tests := []struct {
		name    string
		headers map[string]string
		status  int
		subject string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer good-token"}, http.StatusOK, "user-123"},
		{"lowercase bearer", map[string]string{"Authorization": "bearer good-token"}, http.StatusOK, "user-123"},
		{"api key", map[string]string{APIKeyHeader: "service-key"}, http.StatusOK, APIKeySubject},
		{"missing", nil, http.StatusUnauthorized, ""},
		{"bad token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"wrong scheme", map[string]string{"Authorization": "Basic good-token"}, http.StatusUnauthorized, ""},
		{"extra parts", map[string]string{"Authorization": "Bearer good-token x"}, http.StatusUnauthorized, ""},
		{"bad key wins over token", map[string]string{APIKeyHeader: "wrong", "Authorization": "Bearer good-token"}, http.StatusUnauthorized, ""},
	}

	handler := protected(t, tokens, keys)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/documents/1", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.subject, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_NilCollaborators(t *testing.T) {
	handler := protected(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(APIKeyHeader, "anything")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSubject_Missing(t *testing.T) {
	_, err := GetSubject(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
