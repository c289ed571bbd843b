package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lazyspender/lazyspender-go/internal/emulator/recurrence"
	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// PlannedPaymentsHandler handles planned payment API endpoints.
type PlannedPaymentsHandler struct {
	store *store.Store
}

// NewPlannedPaymentsHandler creates a new PlannedPaymentsHandler.
func NewPlannedPaymentsHandler(s *store.Store) *PlannedPaymentsHandler {
	return &PlannedPaymentsHandler{store: s}
}

// List handles GET /api/planned-payments with an optional status filter.
func (h *PlannedPaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing owner")
		return
	}

	status := lazyspender.PaymentStatus(r.URL.Query().Get("status"))
	switch status {
	case "", lazyspender.StatusActive, lazyspender.StatusPaused,
		lazyspender.StatusCompleted, lazyspender.StatusCancelled:
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid status")
		return
	}

	payments, err := h.store.ListPlannedPayments(owner, status)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list planned payments")
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// Get handles GET /api/planned-payments/{id}.
func (h *PlannedPaymentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.store.GetPlannedPayment(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Planned payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get planned payment")
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// Create handles POST /api/planned-payments.
func (h *PlannedPaymentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.PlannedPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if message, ok := validatePlannedPaymentRequest(&req); !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", message)
		return
	}

	payment, err := h.store.CreatePlannedPayment(&req)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create planned payment")
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// Update handles PUT /api/planned-payments/{id}.
func (h *PlannedPaymentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req lazyspender.PlannedPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if message, ok := validatePlannedPaymentRequest(&req); !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", message)
		return
	}

	payment, err := h.store.UpdatePlannedPayment(chi.URLParam(r, "id"), &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Planned payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update planned payment")
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// Delete handles DELETE /api/planned-payments/{id}.
func (h *PlannedPaymentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePlannedPayment(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Planned payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete planned payment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Confirm handles POST /api/planned-payments/{id}/confirm. It posts a
// transaction for the current due date, advances the next due date and
// completes the payment when its end condition is reached. The created
// transaction is returned.
func (h *PlannedPaymentsHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	payment, err := h.store.GetPlannedPayment(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Planned payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get planned payment")
		return
	}

	txn, err := h.store.CreateTransaction(&lazyspender.CreateTransactionRequest{
		Owner:             payment.Owner,
		Account:           payment.Account,
		Category:          payment.Category,
		Amount:            payment.Amount,
		Note:              payment.Description,
		Date:              payment.NextDueDate,
		Currency:          payment.Currency,
		RefCurrencyAmount: payment.Amount,
		PlannedPaymentID:  payment.ID,
		Type:              lazyspender.TypeExpense,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to post transaction")
		return
	}

	nextDue, err := recurrence.NextDueDate(payment, payment.NextDueDate)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to compute next due date")
		return
	}
	payment.NextDueDate = nextDue

	completedCount, err := h.store.CountByPlannedPayment(payment.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to count posted transactions")
		return
	}
	done, err := recurrence.ShouldComplete(payment, completedCount)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to evaluate end condition")
		return
	}
	if done {
		payment.Status = lazyspender.StatusCompleted
	}

	if err := h.store.PutPlannedPayment(payment); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to save planned payment")
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

func validatePlannedPaymentRequest(req *lazyspender.PlannedPaymentRequest) (string, bool) {
	switch {
	case req.Owner == "":
		return "Owner is required", false
	case req.Account == "":
		return "Account is required", false
	case req.Category == "":
		return "Category is required", false
	case req.Amount <= 0:
		return "Amount must be positive", false
	case req.StartDate.IsZero():
		return "Start date is required", false
	case req.RecurrenceType != lazyspender.RecurrenceWeekly && req.RecurrenceType != lazyspender.RecurrenceMonthly:
		return "Recurrence type must be WEEKLY or MONTHLY", false
	case req.RecurrenceValue == "":
		return "Recurrence value is required", false
	case req.EndType != lazyspender.EndOccurrence && req.EndType != lazyspender.EndDate && req.EndType != lazyspender.EndNever:
		return "End type must be OCCURRENCE, DATE or NEVER", false
	case req.EndType != lazyspender.EndNever && req.EndValue == "":
		return "End value is required", false
	case req.ConfirmationType != lazyspender.ConfirmAuto && req.ConfirmationType != lazyspender.ConfirmManual:
		return "Confirmation type must be AUTO or MANUAL", false
	}
	return "", true
}
