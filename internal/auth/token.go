// Package auth verifies bearer tokens and guards routes by identity and role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user a request acts as.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Verifier decodes a raw bearer token. ok is false for any invalid token.
type Verifier interface {
	Verify(token string) (id Identity, ok bool)
}

type claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// JWTAuthority issues and verifies HS256 tokens signed with a shared secret.
type JWTAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTAuthority returns an authority. A zero ttl issues tokens without expiry.
func NewJWTAuthority(secret string, ttl time.Duration) *JWTAuthority {
	return &JWTAuthority{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (a *JWTAuthority) Issue(id Identity) (string, error) {
	if id.Username == "" {
		return "", errors.New("auth: username is required")
	}

	now := a.now()
	c := claims{
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.Username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if a.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func (a *JWTAuthority) Verify(token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !parsed.Valid || c.Username == "" {
		return Identity{}, false
	}

	return Identity{Username: c.Username, IsAdmin: c.IsAdmin}, true
}
