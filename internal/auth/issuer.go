// Package auth mints and verifies the two session credential kinds: a
// short-lived access token and a longer-lived refresh token. Nothing is
// persisted server-side; a token is valid until its embedded expiry.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"timberd/internal/apperr"
)

// Pair is one issued credential pair bound to a single subject.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens with distinct secrets and TTLs per
// credential kind.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer validates the signing configuration and returns an Issuer. A
// missing secret or non-positive TTL is a ConfigurationError; callers treat
// it as startup-fatal.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	switch {
	case accessSecret == "":
		return nil, &apperr.ConfigurationError{Key: "JWT_SIGNING_KEY"}
	case refreshSecret == "":
		return nil, &apperr.ConfigurationError{Key: "JWT_REFRESH_KEY"}
	case accessTTL <= 0:
		return nil, &apperr.ConfigurationError{Key: "ACCESS_TOKEN_TTL"}
	case refreshTTL <= 0:
		return nil, &apperr.ConfigurationError{Key: "REFRESH_TOKEN_TTL"}
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL returns the refresh-token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Issue mints a fresh access/refresh pair for subject.
func (i *Issuer) Issue(subject uuid.UUID) (Pair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(i.accessTTL)
	refreshExp := now.Add(i.refreshTTL)

	access, err := sign(subject, i.accessSecret, now, accessExp)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := sign(subject, i.refreshSecret, now, refreshExp)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess checks signature and expiry of an access token and returns
// the subject id it is bound to.
func (i *Issuer) VerifyAccess(token string) (uuid.UUID, error) {
	return verify(token, i.accessSecret)
}

// Refresh verifies a refresh token and mints a new access token for the
// same subject. The refresh token itself is not rotated or invalidated: it
// remains reusable until its own expiry.
func (i *Issuer) Refresh(refreshToken string) (string, time.Time, error) {
	subject, err := verify(refreshToken, i.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now().UTC()
	exp := now.Add(i.accessTTL)
	access, err := sign(subject, i.accessSecret, now, exp)
	if err != nil {
		return "", time.Time{}, err
	}
	return access, exp, nil
}

func sign(subject uuid.UUID, secret []byte, now, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(token string, secret []byte) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, &apperr.InvalidCredentialError{Reason: "token expired"}
		}
		return uuid.Nil, &apperr.InvalidCredentialError{Reason: "invalid token"}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, &apperr.InvalidCredentialError{Reason: "token has no subject"}
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, &apperr.InvalidCredentialError{Reason: "malformed token subject"}
	}
	return subject, nil
}
