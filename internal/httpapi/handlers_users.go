package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"timberd/internal/models"
	"timberd/internal/services/users"
)

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, badRequest("valid " + param + " is required")
	}
	return id, nil
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		list []models.User
		err  error
	)
	if q != "" {
		list, err = a.users.Search(r.Context(), q)
	} else {
		list, err = a.users.List(r.Context())
	}
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	user, err := a.users.GetWithDetails(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if user == nil {
		respondJSON(w, http.StatusNotFound, "user not found", nil)
		return
	}
	respondOK(w, "ok", user)
}

func (a *API) handleUsersByRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "roleID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.users.FindByRole(r.Context(), roleID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		FullName  *string    `json:"fullName"`
		Phone     *string    `json:"phone"`
		Active    *bool      `json:"active"`
		RoleID    *uuid.UUID `json:"roleId"`
		AddressID *uuid.UUID `json:"addressId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	user, err := a.users.Update(r.Context(), id, users.UpdateParams{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Active:    req.Active,
		RoleID:    req.RoleID,
		AddressID: req.AddressID,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionEdit, "user", id.String(), "user updated"))
	respondOK(w, "user updated", user)
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	if err := a.users.UpdatePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionEdit, "user", id.String(), "password changed"))
	respondOK(w, "password changed", nil)
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := a.users.Delete(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.recorder.Record(r.Context(), auditEntry(r, models.ActionDelete, "user", id.String(), "user deleted"))
	respondOK(w, "user deleted", nil)
}
