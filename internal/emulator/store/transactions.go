package store

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// CreateTransaction stores a new transaction with a generated ID.
func (s *Store) CreateTransaction(req *lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error) {
	txn := &lazyspender.Transaction{
		ID:                uuid.New().String(),
		Owner:             req.Owner,
		Account:           req.Account,
		Category:          req.Category,
		Amount:            req.Amount,
		Note:              req.Note,
		Date:              req.Date,
		Currency:          req.Currency,
		RefCurrencyAmount: req.RefCurrencyAmount,
		PlannedPaymentID:  req.PlannedPaymentID,
		Type:              req.Type,
	}

	if err := s.put(BucketTransactions, txn.ID, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *Store) GetTransaction(id string) (*lazyspender.Transaction, error) {
	var txn lazyspender.Transaction
	if err := s.get(BucketTransactions, id, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction replaces the fields of an existing transaction.
func (s *Store) UpdateTransaction(id string, req *lazyspender.CreateTransactionRequest) (*lazyspender.Transaction, error) {
	txn, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	txn.Owner = req.Owner
	txn.Account = req.Account
	txn.Category = req.Category
	txn.Amount = req.Amount
	txn.Note = req.Note
	txn.Date = req.Date
	txn.Currency = req.Currency
	txn.RefCurrencyAmount = req.RefCurrencyAmount
	txn.PlannedPaymentID = req.PlannedPaymentID
	txn.Type = req.Type

	if err := s.put(BucketTransactions, id, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *Store) DeleteTransaction(id string) error {
	return s.delete(BucketTransactions, id)
}

// ListTransactions returns all transactions, most recent first.
func (s *Store) ListTransactions() ([]lazyspender.Transaction, error) {
	raws, err := s.list(BucketTransactions)
	if err != nil {
		return nil, err
	}

	txns := make([]lazyspender.Transaction, 0, len(raws))
	for _, raw := range raws {
		var txn lazyspender.Transaction
		if err := json.Unmarshal(raw, &txn); err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date.Equal(txns[j].Date) {
			return txns[i].ID > txns[j].ID
		}
		return txns[i].Date.After(txns[j].Date)
	})
	return txns, nil
}

// ListTransactionsByOwner returns one owner's transactions, most recent first.
func (s *Store) ListTransactionsByOwner(owner string) ([]lazyspender.Transaction, error) {
	all, err := s.ListTransactions()
	if err != nil {
		return nil, err
	}

	txns := make([]lazyspender.Transaction, 0, len(all))
	for _, txn := range all {
		if txn.Owner == owner {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

// CountByPlannedPayment counts transactions posted from a planned payment.
func (s *Store) CountByPlannedPayment(plannedPaymentID string) (int, error) {
	all, err := s.ListTransactions()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, txn := range all {
		if txn.PlannedPaymentID == plannedPaymentID {
			count++
		}
	}
	return count, nil
}

// DistinctNotes returns the unique non-empty notes for an owner, sorted.
func (s *Store) DistinctNotes(owner string) ([]string, error) {
	txns, err := s.ListTransactionsByOwner(owner)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	notes := make([]string, 0)
	for _, txn := range txns {
		if txn.Note == "" {
			continue
		}
		if _, ok := seen[txn.Note]; ok {
			continue
		}
		seen[txn.Note] = struct{}{}
		notes = append(notes, txn.Note)
	}

	sort.Strings(notes)
	return notes, nil
}
