package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and verifies signed identity tokens. It is a pure
// function of the secret and the clock; nothing is persisted.
type TokenService struct {
	secret     []byte
	tokenDurat time.Duration // Duration for which a token is valid
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Issue produces a signed token embedding the subject's user ID.
func (s *TokenService) Issue(subjectID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": subjectID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token, returning the embedded user ID.
// It fails with ErrExpiredToken past expiry and ErrInvalidToken for any
// other defect (bad signature, malformed, wrong algorithm).
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	subjectID, ok := claims["user_id"].(string)
	if !ok || subjectID == "" {
		return "", ErrInvalidToken
	}
	return subjectID, nil
}
