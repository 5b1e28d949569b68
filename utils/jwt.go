package utils

import (
	"errors"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ParseUserID validates an HS256 access token minted by the auth service and
// extracts the userId claim. Token issuance lives outside this backend; we
// only verify.
func ParseUserID(tokenString string) (uint, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	switch id := claims["userId"].(type) {
	case float64: // JSON numbers decode as float64
		return uint(id), nil
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, errors.New("invalid userId claim")
		}
		return uint(n), nil
	default:
		return 0, errors.New("userId claim missing")
	}
}
