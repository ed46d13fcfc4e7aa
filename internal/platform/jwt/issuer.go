// Package jwtmw はセッショントークン（JWT）の発行・検証と認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todo_backend/internal/feature/auth/domain/entity"
)

// ErrInvalidToken is returned when a token cannot be parsed, is badly signed, or is expired.
var ErrInvalidToken = errors.New("invalid token")

// ErrMissingSecret is returned when the issuer has no signing key configured.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Issuer creates and verifies HS256-signed session tokens.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewIssuer creates a new Issuer with the provided secret and expiration duration.
func NewIssuer(secret string, expiration time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Issue creates a signed token whose subject is the given user ID.
func (i *Issuer) Issue(userID uint) (*entity.SessionToken, error) {
	// 空の鍵で署名したトークンは誰でも偽造できる
	if len(i.secret) == 0 {
		return nil, ErrMissingSecret
	}
	// JWTの時刻は秒精度
	issuedAt := i.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.expiration)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &entity.SessionToken{
		Subject:   userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Signed:    signed,
	}, nil
}

// Parse verifies the signature and expiry of a signed token and returns its contents.
// Only HS256 is accepted.
func (i *Issuer) Parse(signed string) (*entity.SessionToken, error) {
	if len(i.secret) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrMissingSecret)
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	out := &entity.SessionToken{
		Subject:   uint(sub),
		ExpiresAt: claims.ExpiresAt.Time,
		Signed:    signed,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
