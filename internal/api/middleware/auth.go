package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"lunchly/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const subjectKey contextKey = "auth.subject"

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// SubjectFromContext returns the "sub" claim of the token that authenticated
// the request, or "" when auth is disabled.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	logger = logger.With("component", "AuthMiddleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (string, bool) {
	ctx := r.Context()
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(ctx, "Missing Authorization header", "path", r.URL.Path)
		return "", false
	}

	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		logger.WarnContext(ctx, "Invalid Authorization header format")
		return "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.WarnContext(ctx, "Invalid token", "error", err)
		return "", false
	}

	subject, _ := token.Claims.GetSubject()
	logger.DebugContext(ctx, "Authenticated request", "sub", subject)
	return subject, true
}
