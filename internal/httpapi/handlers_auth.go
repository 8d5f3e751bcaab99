package httpapi

import (
	"net/http"

	"timberd/internal/auth"
	"timberd/internal/models"
	"timberd/internal/services/users"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Phone    string `json:"phone"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	user, err := a.users.Create(r.Context(), users.CreateParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	entry := auditEntry(r, models.ActionAdd, "user", user.ID.String(), "user registered")
	entry.UserID = &user.ID
	a.recorder.Record(r.Context(), entry)
	respondCreated(w, "user registered", user)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	user, err := a.users.Authenticate(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	pair, err := a.issuer.Issue(user.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	auth.SetPair(w, pair, a.issuer.AccessTTL(), a.issuer.RefreshTTL(), a.cookies)

	entry := auditEntry(r, models.ActionSubmit, "session", user.ID.String(), "user logged in")
	entry.UserID = &user.ID
	a.recorder.Record(r.Context(), entry)
	respondOK(w, "logged in", user)
}

// handleRefresh mints a new access cookie from a valid refresh cookie. The
// refresh token itself is not rotated.
func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ck, err := r.Cookie(auth.RefreshTokenCookie)
	if err != nil || ck.Value == "" {
		respondJSON(w, http.StatusUnauthorized, "refresh token required", nil)
		return
	}

	access, expiresAt, err := a.issuer.Refresh(ck.Value)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	http.SetCookie(w, auth.TokenCookie(auth.AccessTokenCookie, access, a.issuer.AccessTTL(), a.cookies))
	respondOK(w, "token refreshed", map[string]any{"expiresAt": expiresAt})
}

// handleLogout clears both session cookies. Tokens already issued remain
// valid until their embedded expiry.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearPair(w, a.cookies)
	respondOK(w, "logged out", nil)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.GetWithDetails(r.Context(), sessionSubject(r.Context()))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, "account no longer exists", nil)
		return
	}
	respondOK(w, "ok", user)
}
