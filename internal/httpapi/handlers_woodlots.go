package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"timberd/internal/models"
	"timberd/internal/services/woodlots"
)

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, badRequest(key + " must be a valid id")
	}
	return &id, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badRequest(key + " must be a number")
	}
	return &f, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Accept plain dates as well.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, badRequest(key + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
	}
	return &t, nil
}

func woodLotFilter(r *http.Request) (woodlots.Filter, error) {
	var f woodlots.Filter
	var err error

	if f.SpeciesID, err = queryUUID(r, "speciesId"); err != nil {
		return f, err
	}
	if f.CreatedByID, err = queryUUID(r, "createdById"); err != nil {
		return f, err
	}
	f.Quality = strings.TrimSpace(r.URL.Query().Get("quality"))
	f.Origin = strings.TrimSpace(r.URL.Query().Get("origin"))
	if f.MinQuantity, err = queryFloat(r, "minQuantity"); err != nil {
		return f, err
	}
	if f.MaxQuantity, err = queryFloat(r, "maxQuantity"); err != nil {
		return f, err
	}
	if f.HarvestedFrom, err = queryTime(r, "harvestedFrom"); err != nil {
		return f, err
	}
	if f.HarvestedTo, err = queryTime(r, "harvestedTo"); err != nil {
		return f, err
	}
	return f, nil
}

func (a *API) handleListWoodLots(w http.ResponseWriter, r *http.Request) {
	filter, err := woodLotFilter(r)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.woodlots.List(r.Context(), filter)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleGetWoodLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	lot, err := a.woodlots.GetDetails(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if lot == nil {
		respondJSON(w, http.StatusNotFound, "wood lot not found", nil)
		return
	}
	respondOK(w, "ok", lot)
}

func (a *API) handleWoodLotsBySpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, err := pathUUID(r, "speciesID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.woodlots.FindBySpecies(r.Context(), speciesID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleWoodLotsByCreator(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.woodlots.FindByCreator(r.Context(), userID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleCreateWoodLot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SpeciesID   *uuid.UUID `json:"speciesId"`
		Origin      string     `json:"origin"`
		Quantity    float64    `json:"quantity"`
		Unit        string     `json:"unit"`
		Quality     string     `json:"quality"`
		HarvestDate *time.Time `json:"harvestDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	lot, err := a.woodlots.Create(r.Context(), woodlots.CreateParams{
		SpeciesID:   req.SpeciesID,
		Origin:      req.Origin,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Quality:     req.Quality,
		HarvestDate: req.HarvestDate,
		CreatedByID: sessionSubjectRef(r.Context()),
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionAdd, "wood_lot", lot.ID.String(), "wood lot recorded"))
	respondCreated(w, "wood lot created", lot)
}

func (a *API) handleUpdateWoodLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		SpeciesID   *uuid.UUID `json:"speciesId"`
		Origin      *string    `json:"origin"`
		Quantity    *float64   `json:"quantity"`
		Unit        *string    `json:"unit"`
		Quality     *string    `json:"quality"`
		HarvestDate *time.Time `json:"harvestDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	lot, err := a.woodlots.Update(r.Context(), id, woodlots.UpdateParams{
		SpeciesID:   req.SpeciesID,
		Origin:      req.Origin,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Quality:     req.Quality,
		HarvestDate: req.HarvestDate,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionEdit, "wood_lot", id.String(), "wood lot updated"))
	respondOK(w, "wood lot updated", lot)
}

func (a *API) handleDeleteWoodLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := a.woodlots.Delete(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.recorder.Record(r.Context(), auditEntry(r, models.ActionDelete, "wood_lot", id.String(), "wood lot deleted"))
	respondOK(w, "wood lot deleted", nil)
}
