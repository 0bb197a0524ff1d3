package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, email string, method jwt.SigningMethod) string {
	t.Helper()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	var gotEmail string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, gotOK = CallerEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTAuth(testSecret, logger.NewNop())(next)

	t.Run("valid token passes caller email through", func(t *testing.T) {
		gotEmail, gotOK = "", false
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "owner@example.com", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, "owner@example.com", gotEmail)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with wrong secret is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "owner@example.com", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without email claim is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
