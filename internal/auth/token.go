// This file implements signed bearer tokens. Tokens are HS256 JWTs whose
// subject is the user id; anything malformed, expired, or signed with a
// different key verifies as ErrUnauthenticated.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// DefaultTokenTTL is used when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// Issuer mints and verifies bearer tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. An empty secret is refused; a zero ttl
// falls back to DefaultTokenTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token identifying userID.
func (i *Issuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", types.ErrInvalidID
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user id it identifies.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", types.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", types.ErrUnauthenticated
	}
	return claims.Subject, nil
}
