package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc123")
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	// Proxies rewrite the scheme's case.
	token, ok = BearerToken("bearer abc123")
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc123", "abc123"} {
		_, ok := BearerToken(header)
		assert.False(t, ok, "header %q should be rejected", header)
	}
}

func TestAuthMiddleware(t *testing.T) {
	svc := NewService(nil, "test-secret")
	token, err := svc.issueToken("user_abc")
	require.NoError(t, err)

	var gotUserID string
	handler := svc.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user_abc", gotUserID)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	svc := NewService(nil, "test-secret")
	handler := svc.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid token")
	}))

	cases := map[string]string{
		"missing header":    "",
		"wrong scheme":      "Basic abc",
		"empty token":       "Bearer ",
		"garbage token":     "Bearer not-a-jwt",
		"wrong signing key": "Bearer " + mustToken(t, "other-secret"),
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := NewService(nil, secret).issueToken("user_abc")
	require.NoError(t, err)
	return token
}
