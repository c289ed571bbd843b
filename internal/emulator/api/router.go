// Package api implements the LazySpender REST API handlers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// NewRouter builds the emulator's HTTP router with all API routes
// mounted.
func NewRouter(st *store.Store) chi.Router {
	transactionsHandler := NewTransactionsHandler(st)
	trendHandler := NewBalanceTrendHandler(st)
	plannedPaymentsHandler := NewPlannedPaymentsHandler(st)
	usersHandler := NewUsersHandler(st)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Get("/notes", transactionsHandler.DistinctNotes)
			r.Get("/{id}", transactionsHandler.Get)
			r.Put("/{id}", transactionsHandler.Update)
			r.Delete("/{id}", transactionsHandler.Delete)
		})

		r.Get("/balance-trend", trendHandler.Get)

		r.Route("/planned-payments", func(r chi.Router) {
			r.Get("/", plannedPaymentsHandler.List)
			r.Post("/", plannedPaymentsHandler.Create)
			r.Get("/{id}", plannedPaymentsHandler.Get)
			r.Put("/{id}", plannedPaymentsHandler.Update)
			r.Delete("/{id}", plannedPaymentsHandler.Delete)
			r.Post("/{id}/confirm", plannedPaymentsHandler.Confirm)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersHandler.List)
			r.Post("/", usersHandler.Create)
			r.Get("/owner/{owner}", usersHandler.GetByOwner)
			r.Get("/{id}", usersHandler.Get)
			r.Put("/{id}", usersHandler.Update)
			r.Delete("/{id}", usersHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes an error response in the API's error format.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, lazyspender.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
