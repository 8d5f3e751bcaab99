package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenCookieAttributes(t *testing.T) {
	ck := TokenCookie(AccessTokenCookie, "tok", 15*time.Minute, CookieOptions{Domain: "example.com", Secure: true})

	require.Equal(t, AccessTokenCookie, ck.Name)
	require.Equal(t, "tok", ck.Value)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, "example.com", ck.Domain)
	require.True(t, ck.HttpOnly)
	require.True(t, ck.Secure)
	require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	require.Equal(t, int((15 * time.Minute).Seconds()), ck.MaxAge)
}

func TestTokenCookieOmitsEmptyDomain(t *testing.T) {
	ck := TokenCookie(AccessTokenCookie, "tok", time.Minute, CookieOptions{Domain: "  "})
	require.Empty(t, ck.Domain)
}

func TestDeletionCookieExpiresImmediately(t *testing.T) {
	ck := DeletionCookie(RefreshTokenCookie, CookieOptions{})

	require.Equal(t, RefreshTokenCookie, ck.Name)
	require.Empty(t, ck.Value)
	require.Equal(t, -1, ck.MaxAge)
	require.True(t, ck.Expires.Before(time.Now()))
}

func TestSetPairAndClearPair(t *testing.T) {
	rec := httptest.NewRecorder()
	pair := Pair{AccessToken: "a", RefreshToken: "r"}
	SetPair(rec, pair, time.Minute, time.Hour, CookieOptions{})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	require.Equal(t, "a", byName[AccessTokenCookie].Value)
	require.Equal(t, "r", byName[RefreshTokenCookie].Value)

	rec = httptest.NewRecorder()
	ClearPair(rec, CookieOptions{})
	for _, ck := range rec.Result().Cookies() {
		require.Empty(t, ck.Value)
		require.Equal(t, -1, ck.MaxAge)
	}
}
