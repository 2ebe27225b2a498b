package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and verifies HS256 session tokens carrying the user id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a token for userID expiring after the configured TTL
func (t *Tokens) GenerateToken(userID int) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("JWT secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     t.now().Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// ParseToken validates a raw token string and returns its user id
func (t *Tokens) ParseToken(raw string) (int, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "Bearer ")
	if raw == "" {
		return 0, fmt.Errorf("no token provided")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("invalid user_id claim")
	}
	return int(id), nil
}

// UserIDFromHeader reads the token from the Authorization header only.
func (t *Tokens) UserIDFromHeader(r *http.Request) (int, error) {
	return t.ParseToken(r.Header.Get("Authorization"))
}

// UserIDFromRequest reads the token from the Authorization header, falling back to
// the token query parameter. Only websocket handlers use it.
func (t *Tokens) UserIDFromRequest(r *http.Request) (int, error) {
	if r.Header.Get("Authorization") != "" {
		return t.UserIDFromHeader(r)
	}
	return t.ParseToken(r.URL.Query().Get("token"))
}
