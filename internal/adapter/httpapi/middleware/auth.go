package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// CallerEmailCtxKey holds the authenticated caller's email address — the
// authorization principal for every mutating operation.
const CallerEmailCtxKey = ContextKey("caller_email")

// Claims is the JWT claim set expected from the user service.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuth authenticates requests by a Bearer token and stores the caller
// email in the request context.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("invalid authorization header format", zap.String("path", r.URL.Path))
				http.Error(w, "authorization token format is invalid, expected 'Bearer <token>'", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, "authorization token is invalid", http.StatusUnauthorized)
				return
			}
			if claims.Email == "" {
				log.Warn("token carries no email claim", zap.String("path", r.URL.Path))
				http.Error(w, "authorization token carries no email claim", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CallerEmailCtxKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerEmail extracts the authenticated caller email set by JWTAuth.
func CallerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(CallerEmailCtxKey).(string)
	return email, ok && email != ""
}
