package auth

import (
	"net/http"
	"strings"
	"time"
)

// Cookie names carrying the two session credentials.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieOptions controls the transport attributes shared by both cookies.
type CookieOptions struct {
	Domain string
	Secure bool
}

// TokenCookie builds an httpOnly, SameSite=Strict session cookie whose
// maxAge equals the token's TTL.
func TokenCookie(name, value string, ttl time.Duration, opts CookieOptions) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if strings.TrimSpace(opts.Domain) != "" {
		ck.Domain = opts.Domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// DeletionCookie builds a cookie that instructs the client to forget the
// named credential. This is a client-side hint only: an already issued
// token stays valid until its embedded expiry.
func DeletionCookie(name string, opts CookieOptions) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if strings.TrimSpace(opts.Domain) != "" {
		ck.Domain = opts.Domain
	}
	return ck
}

// SetPair writes both session cookies for an issued credential pair.
func SetPair(w http.ResponseWriter, pair Pair, accessTTL, refreshTTL time.Duration, opts CookieOptions) {
	http.SetCookie(w, TokenCookie(AccessTokenCookie, pair.AccessToken, accessTTL, opts))
	http.SetCookie(w, TokenCookie(RefreshTokenCookie, pair.RefreshToken, refreshTTL, opts))
}

// ClearPair writes deletion cookies for both credentials.
func ClearPair(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, DeletionCookie(AccessTokenCookie, opts))
	http.SetCookie(w, DeletionCookie(RefreshTokenCookie, opts))
}
