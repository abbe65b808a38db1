package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenDuration = 24 * time.Hour

// Sessions issues signed session tokens for logged-in users.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

func (s *Sessions) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
