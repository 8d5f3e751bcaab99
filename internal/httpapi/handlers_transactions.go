package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"timberd/internal/models"
	"timberd/internal/services/transactions"
)

func transactionFilter(r *http.Request) (transactions.Filter, error) {
	var f transactions.Filter
	var err error

	if f.WoodLotID, err = queryUUID(r, "woodLotId"); err != nil {
		return f, err
	}
	if f.BuyerID, err = queryUUID(r, "buyerId"); err != nil {
		return f, err
	}
	if f.SellerID, err = queryUUID(r, "sellerId"); err != nil {
		return f, err
	}
	if f.CreatedByID, err = queryUUID(r, "createdById"); err != nil {
		return f, err
	}
	f.Status = strings.TrimSpace(r.URL.Query().Get("status"))
	if f.DateFrom, err = queryTime(r, "dateFrom"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryTime(r, "dateTo"); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryFloat(r, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(r, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func (a *API) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilter(r)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.transactions.List(r.Context(), filter)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	txn, err := a.transactions.GetDetails(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if txn == nil {
		respondJSON(w, http.StatusNotFound, "transaction not found", nil)
		return
	}
	respondOK(w, "ok", txn)
}

func (a *API) handleTransactionsByBuyer(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.transactions.FindByBuyer(r.Context(), userID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleTransactionsBySeller(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.transactions.FindBySeller(r.Context(), userID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleTransactionsByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	list, err := a.transactions.FindByStatus(r.Context(), status)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleTransactionsByWoodLot(w http.ResponseWriter, r *http.Request) {
	lotID, err := pathUUID(r, "lotID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	list, err := a.transactions.FindByWoodLot(r.Context(), lotID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", list)
}

func (a *API) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WoodLotID       *uuid.UUID `json:"woodLotId"`
		BuyerID         *uuid.UUID `json:"buyerId"`
		SellerID        *uuid.UUID `json:"sellerId"`
		Price           *float64   `json:"price"`
		TransactionDate *time.Time `json:"transactionDate"`
		Status          string     `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	txn, err := a.transactions.Create(r.Context(), transactions.CreateParams{
		WoodLotID:       req.WoodLotID,
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		Price:           req.Price,
		TransactionDate: req.TransactionDate,
		Status:          req.Status,
		CreatedByID:     sessionSubjectRef(r.Context()),
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionAdd, "transaction", txn.ID.String(), "transaction recorded"))
	respondCreated(w, "transaction created", txn)
}

func (a *API) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		WoodLotID       *uuid.UUID `json:"woodLotId"`
		BuyerID         *uuid.UUID `json:"buyerId"`
		SellerID        *uuid.UUID `json:"sellerId"`
		Price           *float64   `json:"price"`
		TransactionDate *time.Time `json:"transactionDate"`
		Status          *string    `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	txn, err := a.transactions.Update(r.Context(), id, transactions.UpdateParams{
		WoodLotID:       req.WoodLotID,
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		Price:           req.Price,
		TransactionDate: req.TransactionDate,
		Status:          req.Status,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionEdit, "transaction", id.String(), "transaction updated"))
	respondOK(w, "transaction updated", txn)
}

func (a *API) handleUpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}
	if req.Status == "" {
		a.respondError(w, r, badRequest("status is required"))
		return
	}

	txn, err := a.transactions.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	action := models.ActionEdit
	if req.Status == models.StatusApproved {
		action = models.ActionApprove
	}
	a.recorder.Record(r.Context(), auditEntry(r, action, "transaction", id.String(), "transaction status changed to "+req.Status))
	respondOK(w, "transaction status updated", txn)
}

func (a *API) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := a.transactions.Delete(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.recorder.Record(r.Context(), auditEntry(r, models.ActionDelete, "transaction", id.String(), "transaction deleted"))
	respondOK(w, "transaction deleted", nil)
}

func (a *API) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	docs, err := a.transactions.ListDocuments(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", docs)
}

func (a *API) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	var req struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
		URL  string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, r, badRequest(err.Error()))
		return
	}

	doc, err := a.transactions.AddDocument(r.Context(), id, transactions.DocumentParams{
		Name: req.Name,
		Kind: req.Kind,
		URL:  req.URL,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.recorder.Record(r.Context(), auditEntry(r, models.ActionAdd, "transaction_document", doc.ID.String(), "document attached"))
	respondCreated(w, "document attached", doc)
}

func (a *API) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID, err := pathUUID(r, "docID")
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if err := a.transactions.DeleteDocument(r.Context(), docID); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.recorder.Record(r.Context(), auditEntry(r, models.ActionDelete, "transaction_document", docID.String(), "document removed"))
	respondOK(w, "document removed", nil)
}

func (a *API) handleListActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			a.respondError(w, r, badRequest("limit must be an integer"))
			return
		}
		limit = l
	}
	entries, err := a.recorder.List(r.Context(), limit)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondOK(w, "ok", entries)
}
