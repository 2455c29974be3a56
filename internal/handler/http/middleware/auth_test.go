package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTAuth() *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte("test-secret-key"), nil)
}

func requestWithClaims(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) *http.Request {
	t.Helper()
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
}

func runGate(ja *jwtauth.JWTAuth, r *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	AuthRequired(ja)(next).ServeHTTP(rec, r)
	return rec, reached
}

func TestAuthRequired_AccessTokenPasses(t *testing.T) {
	ja := testJWTAuth()
	r := requestWithClaims(t, ja, map[string]interface{}{
		"type":    "access",
		"user_id": "usr-1",
		"email":   "dina@example.com",
		"role":    "organizer",
	})

	rec, reached := runGate(ja, r)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	ja := testJWTAuth()
	r := requestWithClaims(t, ja, map[string]interface{}{
		"type":    "refresh",
		"user_id": "usr-1",
	})

	rec, reached := runGate(ja, r)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_MissingUserIDRejected(t *testing.T) {
	ja := testJWTAuth()
	r := requestWithClaims(t, ja, map[string]interface{}{
		"type": "access",
	})

	rec, reached := runGate(ja, r)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_NoTokenRejected(t *testing.T) {
	ja := testJWTAuth()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(jwtauth.NewContext(r.Context(), nil, jwtauth.ErrNoTokenFound))

	rec, reached := runGate(ja, r)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
