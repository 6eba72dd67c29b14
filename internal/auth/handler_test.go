package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The validation paths reject before the service touches the database, so a
// nil-backed service is safe here.
func newValidationHandler() *Handler {
	return NewHandler(NewService(nil, "test-secret"))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	h := newValidationHandler()

	rec := postJSON(t, h.Register, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := newValidationHandler()

	rec := postJSON(t, h.Register, `{"email":"a@b.com","password":"longenough"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorField(t, rec), "required")

	// Whitespace-only names count as missing.
	rec = postJSON(t, h.Register, `{"email":"a@b.com","password":"longenough","displayName":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	h := newValidationHandler()

	rec := postJSON(t, h.Register, `{"email":"nobody","password":"longenough","displayName":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorField(t, rec), "email")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := newValidationHandler()

	rec := postJSON(t, h.Register, `{"email":"a@b.com","password":"short","displayName":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorField(t, rec), "8 characters")
}

func TestRegisterRejectsOversizedDisplayName(t *testing.T) {
	h := newValidationHandler()

	name := strings.Repeat("x", maxDisplayNameLen+1)
	rec := postJSON(t, h.Register, `{"email":"a@b.com","password":"longenough","displayName":"`+name+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorField(t, rec), "displayName")
}

func TestLoginRejectsMissingFields(t *testing.T) {
	h := newValidationHandler()

	rec := postJSON(t, h.Login, `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", normalizeEmail("  Alice@Example.COM "))
}
