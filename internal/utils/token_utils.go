package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateOwnerToken signs an HS256 token whose subject is the ledger owner
// ID accepted by the API's bearer authentication.
func GenerateOwnerToken(ownerID, secret, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if ownerID == "" {
		return "", errors.New("owner ID cannot be empty")
	}
	if ttl <= 0 {
		return "", errors.New("token lifetime must be positive")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   ownerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
