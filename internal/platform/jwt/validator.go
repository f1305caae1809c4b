// Package jwt validates bearer tokens for the API surface.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "pathways/pkg/domain-errors"
)

// Claims is the token payload the service understands.
type Claims struct {
	jwt.RegisteredClaims
}

// Validator checks HS256 tokens against a shared signing key.
type Validator struct {
	key []byte
}

func NewValidator(signingKey string) *Validator {
	return &Validator{key: []byte(signingKey)}
}

// Validate parses and verifies the token, returning the subject claim.
func (v *Validator) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token missing subject")
	}
	return claims.Subject, nil
}

// Issue mints a token for the subject. Used by tooling and tests.
func (v *Validator) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
