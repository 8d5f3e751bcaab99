package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"timberd/internal/auth"
)

type contextKey string

const subjectKey contextKey = "subject"

// requireSession admits only requests carrying a valid access-token cookie.
// The verified subject id is stored on the request context.
func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(auth.AccessTokenCookie)
		if err != nil || ck.Value == "" {
			respondJSON(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		subject, err := a.issuer.VerifyAccess(ck.Value)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, err.Error(), nil)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionSubject returns the authenticated user id placed on ctx by
// requireSession, or uuid.Nil outside an authenticated route.
func sessionSubject(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(subjectKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// sessionSubjectRef is sessionSubject shaped for nullable foreign keys.
func sessionSubjectRef(ctx context.Context) *uuid.UUID {
	id := sessionSubject(ctx)
	if id == uuid.Nil {
		return nil
	}
	return &id
}
