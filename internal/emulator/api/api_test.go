package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

func newTestRouter(t *testing.T) (chi.Router, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("store.New error: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewRouter(st), st
}

func doRequest(t *testing.T, r chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func validTransaction(owner string, date time.Time) *lazyspender.CreateTransactionRequest {
	return &lazyspender.CreateTransactionRequest{
		Owner:             owner,
		Account:           "Cash",
		Category:          "Food",
		Amount:            150,
		Date:              date,
		Currency:          "PHP",
		RefCurrencyAmount: 150,
		Type:              lazyspender.TypeExpense,
	}
}

func TestTransactionListPagination(t *testing.T) {
	r, st := newTestRouter(t)
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := st.CreateTransaction(validTransaction("vin", base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("CreateTransaction error: %v", err)
		}
	}

	rec := doRequest(t, r, http.MethodGet, "/api/transactions?owner=vin&page=0&size=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var page lazyspender.Page[lazyspender.Transaction]
	decodeBody(t, rec, &page)

	if page.TotalElements != 5 || page.TotalPages != 3 {
		t.Errorf("metadata = total %d pages %d, want 5/3", page.TotalElements, page.TotalPages)
	}
	if !page.HasNext || page.HasPrevious {
		t.Errorf("hasNext=%v hasPrevious=%v, want true/false", page.HasNext, page.HasPrevious)
	}
	if len(page.Content) != 2 {
		t.Fatalf("content length = %d, want 2", len(page.Content))
	}
	if page.Content[0].Date.Before(page.Content[1].Date) {
		t.Error("content not date-descending")
	}

	// Last page.
	rec = doRequest(t, r, http.MethodGet, "/api/transactions?owner=vin&page=2&size=2", nil)
	decodeBody(t, rec, &page)
	if len(page.Content) != 1 || page.HasNext || !page.HasPrevious {
		t.Errorf("last page = %d items hasNext=%v hasPrevious=%v", len(page.Content), page.HasNext, page.HasPrevious)
	}
}

func TestTransactionListRequiresOwner(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/transactions", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var errResp lazyspender.ErrorResponse
	decodeBody(t, rec, &errResp)
	if errResp.Error != "invalid_parameter" {
		t.Errorf("error code = %q, want invalid_parameter", errResp.Error)
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*lazyspender.CreateTransactionRequest)
	}{
		{"missing owner", func(req *lazyspender.CreateTransactionRequest) { req.Owner = "" }},
		{"missing account", func(req *lazyspender.CreateTransactionRequest) { req.Account = "" }},
		{"missing category", func(req *lazyspender.CreateTransactionRequest) { req.Category = "" }},
		{"missing date", func(req *lazyspender.CreateTransactionRequest) { req.Date = time.Time{} }},
		{"zero amount", func(req *lazyspender.CreateTransactionRequest) { req.Amount = 0 }},
		{"negative amount", func(req *lazyspender.CreateTransactionRequest) { req.Amount = -5 }},
		{"bad type", func(req *lazyspender.CreateTransactionRequest) { req.Type = "TRANSFER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransaction("vin", date)
			tt.mutate(req)
			rec := doRequest(t, r, http.MethodPost, "/api/transactions", req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}

	rec := doRequest(t, r, http.MethodPost, "/api/transactions", validTransaction("vin", date))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created lazyspender.Transaction
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Error("created transaction has no ID")
	}
}

func TestTransactionNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/transactions/absent"},
		{http.MethodPut, "/api/transactions/absent"},
		{http.MethodDelete, "/api/transactions/absent"},
	} {
		var body interface{}
		if tc.method == http.MethodPut {
			body = validTransaction("vin", time.Now())
		}
		rec := doRequest(t, r, tc.method, tc.path, body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestDistinctNotesEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	for _, note := range []string{"rent", "rent", "coffee"} {
		req := validTransaction("vin", date)
		req.Note = note
		if _, err := st.CreateTransaction(req); err != nil {
			t.Fatalf("CreateTransaction error: %v", err)
		}
	}

	rec := doRequest(t, r, http.MethodGet, "/api/transactions/notes?owner=vin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var notes []string
	decodeBody(t, rec, &notes)
	if len(notes) != 2 {
		t.Errorf("notes = %v, want two distinct notes", notes)
	}
}

func TestBalanceTrendEndpoint(t *testing.T) {
	r, st := newTestRouter(t)

	income := validTransaction("vin", time.Now().UTC().AddDate(0, 0, -7))
	income.Type = lazyspender.TypeIncome
	income.Amount = 8000
	if _, err := st.CreateTransaction(income); err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}

	rec := doRequest(t, r, http.MethodGet, "/api/balance-trend?owner=vin&accounts=Cash&period=LAST_12_WEEKS", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp lazyspender.BalanceTrendResponse
	decodeBody(t, rec, &resp)
	if resp.TotalBalance != 8000 {
		t.Errorf("TotalBalance = %v, want 8000", resp.TotalBalance)
	}
	if len(resp.DataPoints) == 0 {
		t.Error("no data points")
	}

	rec = doRequest(t, r, http.MethodGet, "/api/balance-trend?owner=vin&period=SOMETIME", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid period status = %d, want 400", rec.Code)
	}
}

func TestPlannedPaymentConfirm(t *testing.T) {
	r, st := newTestRouter(t)
	start := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	payment, err := st.CreatePlannedPayment(&lazyspender.PlannedPaymentRequest{
		Owner:            "vin",
		Account:          "Bank",
		Category:         "Housing",
		Amount:           12000,
		Description:      "Rent",
		Currency:         "PHP",
		StartDate:        start,
		RecurrenceType:   lazyspender.RecurrenceMonthly,
		RecurrenceValue:  "15",
		EndType:          lazyspender.EndOccurrence,
		EndValue:         "2",
		ConfirmationType: lazyspender.ConfirmManual,
	})
	if err != nil {
		t.Fatalf("CreatePlannedPayment error: %v", err)
	}

	rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/planned-payments/%s/confirm", payment.ID), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var txn lazyspender.Transaction
	decodeBody(t, rec, &txn)
	if txn.PlannedPaymentID != payment.ID || txn.Note != "Rent" || txn.Amount != 12000 {
		t.Errorf("unexpected posted transaction: %+v", txn)
	}
	if !txn.Date.Equal(start) {
		t.Errorf("transaction date = %v, want due date %v", txn.Date, start)
	}

	after, err := st.GetPlannedPayment(payment.ID)
	if err != nil {
		t.Fatalf("GetPlannedPayment error: %v", err)
	}
	want := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	if !after.NextDueDate.Equal(want) {
		t.Errorf("NextDueDate = %v, want %v", after.NextDueDate, want)
	}
	if after.Status != lazyspender.StatusActive {
		t.Errorf("status after first confirm = %s, want ACTIVE", after.Status)
	}

	// Second confirm reaches the occurrence limit.
	rec = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/planned-payments/%s/confirm", payment.ID), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	after, err = st.GetPlannedPayment(payment.ID)
	if err != nil {
		t.Fatalf("GetPlannedPayment error: %v", err)
	}
	if after.Status != lazyspender.StatusCompleted {
		t.Errorf("status after final confirm = %s, want COMPLETED", after.Status)
	}
}

func TestPlannedPaymentValidationAndFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/planned-payments", &lazyspender.PlannedPaymentRequest{
		Owner: "vin",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/planned-payments?owner=vin&status=SOMETIMES", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status filter = %d, want 400", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/planned-payments?owner=vin", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d, want 200", rec.Code)
	}
}

func TestUserEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/users", &lazyspender.UserRequest{
		Owner:    "vin",
		Accounts: []string{"Cash", "Bank"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var user lazyspender.User
	decodeBody(t, rec, &user)

	// Duplicate owner is rejected.
	rec = doRequest(t, r, http.MethodPost, "/api/users", &lazyspender.UserRequest{
		Owner:    "vin",
		Accounts: []string{"Cash"},
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/users/owner/vin", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get by owner status = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/users/"+user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get by id status = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/users/owner/nobody", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("absent owner status = %d, want 404", rec.Code)
	}
}
