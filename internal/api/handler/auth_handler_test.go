package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunchly/internal/api/handler/dto"
	"lunchly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGenerateBearerToken(t *testing.T) {
	const secret = "test-jwt-secret-key"
	fixedNow := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	h := NewAuthHandler(config.AuthConfig{Enabled: true, JWTSecret: secret}, logger)
	h.now = func() time.Time { return fixedNow }

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		h.GenerateBearerToken(w, req)
		return w
	}

	t.Run("successfully generates token", func(t *testing.T) {
		w := post(`{"username":"front-desk"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, fixedNow.Add(tokenTTL).Unix(), resp.ExpiresAt)
		require.True(t, len(resp.Token) > len("Bearer "))
		assert.Equal(t, "Bearer ", resp.Token[:7])

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(resp.Token[7:], claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
		require.NoError(t, err)
		assert.Equal(t, "front-desk", claims.Subject)
	})

	t.Run("rejects missing username", func(t *testing.T) {
		w := post(`{"username":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Error.Message, "username is required")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := post(`{"username":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
