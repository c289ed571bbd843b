package lazyspender

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListTransactionsSendsPagingParams(t *testing.T) {
	var gotOwner, gotPage, gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transactions" {
			t.Errorf("path = %s, want /api/transactions", r.URL.Path)
		}
		gotOwner = r.URL.Query().Get("owner")
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("size")
		_ = json.NewEncoder(w).Encode(Page[Transaction]{
			Content:       []Transaction{{ID: "1"}},
			PageNumber:    2,
			PageSize:      10,
			TotalElements: 21,
			TotalPages:    3,
			HasNext:       false,
			HasPrevious:   true,
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL, Owner: "vin"})
	page, err := client.ListTransactions(2, 10)
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}

	if gotOwner != "vin" || gotPage != "2" || gotSize != "10" {
		t.Errorf("query owner=%s page=%s size=%s, want owner=vin page=2 size=10", gotOwner, gotPage, gotSize)
	}
	if page.PageNumber != 2 || page.HasNext {
		t.Errorf("unexpected page metadata: %+v", page)
	}
}

func TestFetchAllTransactionsPaginates(t *testing.T) {
	pages := []Page[Transaction]{
		{Content: []Transaction{{ID: "1"}, {ID: "2"}}, PageNumber: 0, HasNext: true},
		{Content: []Transaction{{ID: "3"}}, PageNumber: 1, HasNext: false},
	}
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pages[calls])
		calls++
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL})
	all, err := client.FetchAllTransactions(2)
	if err != nil {
		t.Fatalf("FetchAllTransactions error: %v", err)
	}

	if calls != 2 {
		t.Errorf("requests = %d, want 2", calls)
	}
	if len(all) != 3 || all[0].ID != "1" || all[2].ID != "3" {
		t.Errorf("unexpected transactions: %+v", all)
	}
}

func TestCreateTransactionRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Transaction{
			ID:       "42",
			Owner:    req.Owner,
			Account:  req.Account,
			Category: req.Category,
			Amount:   req.Amount,
			Date:     req.Date,
			Currency: req.Currency,
			Type:     req.Type,
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL})
	tx, err := client.CreateTransaction(CreateTransactionRequest{
		Owner:    "vin",
		Account:  "Cash",
		Category: "Food",
		Amount:   250,
		Date:     time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC),
		Currency: "PHP",
		Type:     TypeExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if tx.ID != "42" || tx.Amount != 250 || tx.Type != TypeExpense {
		t.Errorf("unexpected transaction: %+v", tx)
	}
}

func TestDeleteTransactionNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/transactions/7" {
			t.Errorf("request = %s %s, want DELETE /api/transactions/7", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL})
	if err := client.DeleteTransaction("7"); err != nil {
		t.Fatalf("DeleteTransaction error: %v", err)
	}
}

func TestDistinctNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transactions/notes" || r.URL.Query().Get("owner") != "vin" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]string{"groceries", "rent"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL})
	notes, err := client.DistinctNotes("vin")
	if err != nil {
		t.Fatalf("DistinctNotes error: %v", err)
	}
	if len(notes) != 2 || notes[0] != "groceries" {
		t.Errorf("notes = %v", notes)
	}
}

func TestBalanceTrendQueryEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("owner") != "vin" || query.Get("period") != "LAST_YEAR" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if accounts := query["accounts"]; len(accounts) != 2 {
			t.Errorf("accounts = %v, want 2 values", accounts)
		}
		_ = json.NewEncoder(w).Encode(BalanceTrendResponse{TotalBalance: 100, Currency: "PHP"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL})
	resp, err := client.BalanceTrend(BalanceTrendParams{
		Owner:    "vin",
		Accounts: []string{"Cash", "Bank"},
		Period:   PeriodLastYear,
	})
	if err != nil {
		t.Fatalf("BalanceTrend error: %v", err)
	}
	if resp.TotalBalance != 100 {
		t.Errorf("TotalBalance = %v, want 100", resp.TotalBalance)
	}
}

func TestErrorParsing(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		validation bool
	}{
		{"structured validation error", http.StatusBadRequest, `{"error":"invalid_parameter","message":"Owner is required"}`, "invalid_parameter", true},
		{"structured not found", http.StatusNotFound, `{"error":"not_found","message":"Transaction not found"}`, "not_found", true},
		{"unstructured server error", http.StatusInternalServerError, `boom`, "unexpected_response", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(ClientConfig{APIURL: server.URL})
			_, err := client.GetTransaction("1")
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %T is not *APIError", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Code != tt.wantCode {
				t.Errorf("APIError = %+v, want status %d code %s", apiErr, tt.status, tt.wantCode)
			}
			if apiErr.IsValidation() != tt.validation {
				t.Errorf("IsValidation = %v, want %v", apiErr.IsValidation(), tt.validation)
			}
		})
	}
}
