package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunchly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	tokenString, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err, "failed to sign token")
	return tokenString
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "testsecret"
	logger := discardLogger()
	cfg := config.AuthConfig{Enabled: true, JWTSecret: secret}

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	serve := func(cfg config.AuthConfig, authHeader string) *httptest.ResponseRecorder {
		gotSubject = ""
		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		AuthMiddleware(cfg, logger)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("should allow request when middleware is disabled", func(t *testing.T) {
		rec := serve(config.AuthConfig{Enabled: false}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, gotSubject)
	})

	t.Run("should reject request with missing Authorization header", func(t *testing.T) {
		rec := serve(cfg, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Unauthorized", body["error"]["message"])
	})

	t.Run("should reject request with wrong scheme", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "host"})
		rec := serve(cfg, "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject request with invalid token", func(t *testing.T) {
		rec := serve(cfg, "Bearer invalidtoken")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "host"})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"sub": "host",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject unsigned token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "host"})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should allow request with valid token and expose subject", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"sub": "front-desk",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		rec := serve(cfg, "bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "front-desk", gotSubject)
	})
}
