package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the HS256 bearer token on every request. The
// token subject is the ID of the owner whose ledger profile is served.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return []byte(jwtSecret), nil }

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		raw, problem := bearerToken(c.GetHeader("Authorization"))
		if problem != "" {
			logger.Warn("Rejected authorization header", slog.String("reason", problem))
			abortUnauthorized(c, problem)
			return
		}

		claims := &jwt.RegisteredClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				abortUnauthorized(c, "Token has expired")
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				abortUnauthorized(c, "Token not valid yet")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}
		if claims.Subject == "" {
			logger.Warn("Owner ID (subject) missing from token")
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		ownerID := claims.Subject
		ctx := WithLogger(WithOwnerID(c.Request.Context(), ownerID), logger.With(slog.String("owner_id", ownerID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. A non-empty
// problem is the client-facing reason the header was rejected.
func bearerToken(header string) (token, problem string) {
	if header == "" {
		return "", "Authorization header required"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" || strings.Contains(token, " ") {
		return "", "Authorization header format must be Bearer {token}"
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "kind": apperrors.KindUnauthorized})
}
