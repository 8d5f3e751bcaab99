package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"timberd/internal/models"
	"timberd/internal/services/species"
)

func (a *API) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		list []models.WoodSpecies
		err  error
	)
	if q != "" {
		list, err = a.species.SearchByName(r.Context(), q)
	} else {
		list, err = a.species.List(r.Context())
	}
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleGetSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	entry, err := a.species.Get(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if entry == nil {
		respondJSON(w, http.StatusNotFound, "species not found", nil)
		return
	}
	respondOK(w, "ok", entry)
}

func (a *API) handleSpeciesByConservation(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	list, err := a.species.FindByConservationStatus(r.Context(), status)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleCreateSpecies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScientificName     string `json:"scientificName"`
		CommonName         string `json:"commonName"`
		ConservationStatus string `json:"conservationStatus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	entry, err := a.species.Create(r.Context(), species.CreateParams{
		ScientificName:     req.ScientificName,
		CommonName:         req.CommonName,
		ConservationStatus: req.ConservationStatus,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionAdd, "wood_species", entry.ID.String(), "species catalogued"))
	respondCreated(w, "species created", entry)
}

func (a *API) handleUpdateSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		ScientificName     *string `json:"scientificName"`
		CommonName         *string `json:"commonName"`
		ConservationStatus *string `json:"conservationStatus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	entry, err := a.species.Update(r.Context(), id, species.UpdateParams{
		ScientificName:     req.ScientificName,
		CommonName:         req.CommonName,
		ConservationStatus: req.ConservationStatus,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionEdit, "wood_species", id.String(), "species updated"))
	respondOK(w, "species updated", entry)
}

func (a *API) handleDeleteSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := a.species.Delete(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.recorder.Record(r.Context(), auditEntry(r, models.ActionDelete, "wood_species", id.String(), "species deleted"))
	respondOK(w, "species deleted", nil)
}
