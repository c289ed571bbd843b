package api

import (
	"net/http"
	"time"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/internal/emulator/trend"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// BalanceTrendHandler handles the balance-trend endpoint.
type BalanceTrendHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewBalanceTrendHandler creates a new BalanceTrendHandler.
func NewBalanceTrendHandler(s *store.Store) *BalanceTrendHandler {
	return &BalanceTrendHandler{store: s, now: time.Now}
}

// Get handles GET /api/balance-trend.
func (h *BalanceTrendHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	owner := query.Get("owner")
	if owner == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing owner")
		return
	}

	var period lazyspender.TrendPeriod
	switch p := lazyspender.TrendPeriod(query.Get("period")); p {
	case lazyspender.PeriodLast12Weeks, lazyspender.PeriodLastYear, lazyspender.PeriodFromStart:
		period = p
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid period")
		return
	}

	accounts := query["accounts"]

	// The aggregation needs full history date-ascending for the opening
	// balance, so reverse the store's date-descending order.
	txns, err := h.store.ListTransactionsByOwner(owner)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list transactions")
		return
	}
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}

	writeJSON(w, http.StatusOK, trend.Calculate(txns, accounts, period, h.now()))
}
