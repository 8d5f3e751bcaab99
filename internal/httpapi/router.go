package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	allowed := a.origins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))
	r.Use(a.requestLogger)
	r.Use(instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.handleRegister)
			r.Post("/login", a.handleLogin)
			r.Post("/refresh", a.handleRefresh)
			r.Post("/logout", a.handleLogout)
			r.With(a.requireSession).Get("/me", a.handleMe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(a.requireSession)
			r.Get("/", a.handleListUsers)
			r.Get("/{id}", a.handleGetUser)
			r.Get("/role/{roleID}", a.handleUsersByRole)
			r.Put("/{id}", a.handleUpdateUser)
			r.Put("/{id}/password", a.handleChangePassword)
			r.Delete("/{id}", a.handleDeleteUser)
		})

		r.Route("/species", func(r chi.Router) {
			r.Get("/", a.handleListSpecies)
			r.Get("/{id}", a.handleGetSpecies)
			r.Get("/conservation/{status}", a.handleSpeciesByConservation)
			r.Group(func(r chi.Router) {
				r.Use(a.requireSession)
				r.Post("/", a.handleCreateSpecies)
				r.Put("/{id}", a.handleUpdateSpecies)
				r.Delete("/{id}", a.handleDeleteSpecies)
			})
		})

		r.Route("/woodlots", func(r chi.Router) {
			r.Get("/", a.handleListWoodLots)
			r.Get("/{id}", a.handleGetWoodLot)
			r.Get("/species/{speciesID}", a.handleWoodLotsBySpecies)
			r.Get("/creator/{userID}", a.handleWoodLotsByCreator)
			r.Group(func(r chi.Router) {
				r.Use(a.requireSession)
				r.Post("/", a.handleCreateWoodLot)
				r.Put("/{id}", a.handleUpdateWoodLot)
				r.Delete("/{id}", a.handleDeleteWoodLot)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(a.requireSession)
			r.Get("/", a.handleListTransactions)
			r.Get("/{id}", a.handleGetTransaction)
			r.Get("/buyer/{userID}", a.handleTransactionsByBuyer)
			r.Get("/seller/{userID}", a.handleTransactionsBySeller)
			r.Get("/status/{status}", a.handleTransactionsByStatus)
			r.Get("/woodlot/{lotID}", a.handleTransactionsByWoodLot)
			r.Post("/", a.handleCreateTransaction)
			r.Put("/{id}", a.handleUpdateTransaction)
			r.Patch("/{id}/status", a.handleUpdateTransactionStatus)
			r.Delete("/{id}", a.handleDeleteTransaction)

			r.Get("/{id}/documents", a.handleListDocuments)
			r.Post("/{id}/documents", a.handleAddDocument)
			r.Delete("/documents/{docID}", a.handleDeleteDocument)
		})

		r.With(a.requireSession).Get("/activity", a.handleListActivity)
	})

	return r
}
