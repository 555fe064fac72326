// Package auth implements password hashing and session token issuance.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/knothost/siteapi/internal/common"
)

// TokenIssuer mints and verifies signed session tokens bound to a subject
// (the account email).
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// JWTIssuer is an HS256 TokenIssuer with a fixed validity window.
type JWTIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewJWTIssuer(secret []byte, validity time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: secret, validity: validity, now: time.Now}
}

// Issue returns a token with sub=subject, iat=now and exp=now+validity.
func (i *JWTIssuer) Issue(subject string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// All failures match common.ErrInvalidToken; expiry also matches
// common.ErrTokenExpired. A token is still valid at its exp instant.
func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// exp is checked below so the boundary is inclusive.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing exp", common.ErrInvalidToken)
	}
	if i.now().After(claims.ExpiresAt.Time) {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing sub", common.ErrInvalidToken)
	}

	return claims.Subject, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, common.ErrTokenExpired)
}
