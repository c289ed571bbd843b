package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

const sampleSeed = `
users:
  - owner: vin
    accounts: [Cash, Bank]

transactions:
  - owner: vin
    account: Cash
    category: Food
    amount: 250
    note: groceries
    date: 2025-08-30
    currency: PHP
    type: EXPENSE
  - owner: vin
    account: Bank
    category: Salary
    amount: 5000
    date: 2025-08-15T09:00:00Z
    currency: PHP
    refCurrencyAmount: 5000
    type: INCOME

plannedPayments:
  - owner: vin
    account: Bank
    category: Housing
    amount: 12000
    description: Rent
    currency: PHP
    startDate: 2025-09-01
    recurrenceType: MONTHLY
    recurrenceValue: "1"
    endType: NEVER
    confirmationType: MANUAL
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	data, err := Load(writeSeedFile(t, sampleSeed))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("store.New error: %v", err)
	}
	defer st.Close()

	count, err := Apply(st, data)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if count != 4 {
		t.Errorf("seeded %d records, want 4", count)
	}

	txns, err := st.ListTransactionsByOwner("vin")
	if err != nil {
		t.Fatalf("ListTransactionsByOwner error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("seeded %d transactions, want 2", len(txns))
	}
	// Plain dates parse to midnight UTC; refCurrencyAmount defaults to
	// the amount when omitted.
	if !txns[0].Date.Equal(time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-08-30 midnight UTC", txns[0].Date)
	}
	if txns[0].RefCurrencyAmount != 250 {
		t.Errorf("RefCurrencyAmount = %v, want amount fallback 250", txns[0].RefCurrencyAmount)
	}

	payments, err := st.ListPlannedPayments("vin", "")
	if err != nil {
		t.Fatalf("ListPlannedPayments error: %v", err)
	}
	if len(payments) != 1 || payments[0].Status != lazyspender.StatusActive {
		t.Errorf("unexpected planned payments: %+v", payments)
	}

	if _, err := st.GetUserByOwner("vin"); err != nil {
		t.Errorf("seeded user not found: %v", err)
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	data, err := Load(writeSeedFile(t, `
transactions:
  - owner: vin
    account: Cash
    category: Food
    amount: 10
    date: someday
    currency: PHP
    type: EXPENSE
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("store.New error: %v", err)
	}
	defer st.Close()

	if _, err := Apply(st, data); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
