package integration

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/lazyspender/lazyspender-go/internal/emulator/api"
	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/cache"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

const testOwner = "vin"

// testEnv is one emulator instance with a client and caches wired to it.
type testEnv struct {
	client *lazyspender.Client
	store  *cache.Store
	trends *cache.TrendCache
}

// setupTestServer starts an emulator over a temporary database and wires
// a real API client plus the cache layer against it.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	server := httptest.NewServer(api.NewRouter(st))
	t.Cleanup(server.Close)

	client := lazyspender.NewClient(lazyspender.ClientConfig{
		APIURL: server.URL,
		Owner:  testOwner,
	})

	graph := cache.NewGraph()
	return &testEnv{
		client: client,
		store:  cache.NewStore(client, graph),
		trends: cache.NewTrendCache(client, graph),
	}
}

// expense builds an expense transaction request for the test owner.
func expense(amount float64, note string, date time.Time) lazyspender.CreateTransactionRequest {
	return lazyspender.CreateTransactionRequest{
		Owner:             testOwner,
		Account:           "Cash",
		Category:          "Food",
		Amount:            amount,
		Note:              note,
		Date:              date,
		Currency:          "PHP",
		RefCurrencyAmount: amount,
		Type:              lazyspender.TypeExpense,
	}
}

// income builds an income transaction request for the test owner.
func income(amount float64, date time.Time) lazyspender.CreateTransactionRequest {
	return lazyspender.CreateTransactionRequest{
		Owner:             testOwner,
		Account:           "Bank",
		Category:          "Salary",
		Amount:            amount,
		Date:              date,
		Currency:          "PHP",
		RefCurrencyAmount: amount,
		Type:              lazyspender.TypeIncome,
	}
}

// seedTransactions creates count transactions a day apart, oldest first,
// and returns the created records.
func seedTransactions(t *testing.T, env *testEnv, count int) []lazyspender.Transaction {
	t.Helper()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	created := make([]lazyspender.Transaction, 0, count)
	for i := 0; i < count; i++ {
		txn, err := env.client.CreateTransaction(expense(float64(100+i), "", base.AddDate(0, 0, i)))
		if err != nil {
			t.Fatalf("Failed to seed transaction %d: %v", i, err)
		}
		created = append(created, *txn)
	}
	return created
}
