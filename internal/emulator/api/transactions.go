package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionsHandler handles transaction API endpoints.
type TransactionsHandler struct {
	store *store.Store
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(s *store.Store) *TransactionsHandler {
	return &TransactionsHandler{store: s}
}

// List handles GET /api/transactions. Results are paginated and sorted
// by date descending.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing owner")
		return
	}

	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page")
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil || size < 1 || size > maxPageSize {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid size")
		return
	}

	txns, err := h.store.ListTransactionsByOwner(owner)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, paginate(txns, page, size))
}

// Get handles GET /api/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.store.GetTransaction(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if message, ok := validateTransactionRequest(&req); !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", message)
		return
	}

	txn, err := h.store.CreateTransaction(&req)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

// Update handles PUT /api/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if message, ok := validateTransactionRequest(&req); !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", message)
		return
	}

	txn, err := h.store.UpdateTransaction(chi.URLParam(r, "id"), &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTransaction(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DistinctNotes handles GET /api/transactions/notes.
func (h *TransactionsHandler) DistinctNotes(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing owner")
		return
	}

	notes, err := h.store.DistinctNotes(owner)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func validateTransactionRequest(req *lazyspender.CreateTransactionRequest) (string, bool) {
	switch {
	case req.Owner == "":
		return "Owner is required", false
	case req.Account == "":
		return "Account is required", false
	case req.Category == "":
		return "Category is required", false
	case req.Date.IsZero():
		return "Date is required", false
	case req.Amount <= 0:
		return "Amount must be positive", false
	case req.Type != lazyspender.TypeIncome && req.Type != lazyspender.TypeExpense:
		return "Transaction type must be INCOME or EXPENSE", false
	}
	return "", true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

// paginate slices a full result set into one page with its metadata.
func paginate(txns []lazyspender.Transaction, page, size int) *lazyspender.Page[lazyspender.Transaction] {
	total := len(txns)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &lazyspender.Page[lazyspender.Transaction]{
		Content:       txns[start:end],
		PageNumber:    page,
		PageSize:      size,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		HasNext:       page < totalPages-1,
		HasPrevious:   page > 0,
	}
}
