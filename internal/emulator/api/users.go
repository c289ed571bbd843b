package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// UsersHandler handles user API endpoints.
type UsersHandler struct {
	store *store.Store
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(s *store.Store) *UsersHandler {
	return &UsersHandler{store: s}
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetByOwner handles GET /api/users/owner/{owner}.
func (h *UsersHandler) GetByOwner(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByOwner(chi.URLParam(r, "owner"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if req.Owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Owner is required")
		return
	}
	if len(req.Accounts) == 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "At least one account is required")
		return
	}

	if _, err := h.store.GetUserByOwner(req.Owner); err == nil {
		writeJSONError(w, http.StatusConflict, "already_exists", "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to check user")
		return
	}

	user, err := h.store.CreateUser(&req)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if req.Owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Owner is required")
		return
	}

	user, err := h.store.UpdateUser(chi.URLParam(r, "id"), &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUser(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
