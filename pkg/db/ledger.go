package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// Ledger manages the offline transaction snapshot.
type Ledger struct {
	conn *Connection
}

// NewLedger creates a new Ledger instance.
func NewLedger(conn *Connection) *Ledger {
	return &Ledger{conn: conn}
}

// ReplaceSnapshot replaces the stored snapshot for an owner with the
// given transactions and records the export run. The replacement is
// atomic: a failure leaves the previous snapshot in place.
func (l *Ledger) ReplaceSnapshot(owner string, txns []lazyspender.Transaction) error {
	return l.conn.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM transactions WHERE owner = ?`, owner); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO transactions
				(id, owner, account, category, amount, note, date, currency, ref_currency_amount, planned_payment_id, type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, t := range txns {
			if _, err := stmt.Exec(
				t.ID,
				t.Owner,
				t.Account,
				t.Category,
				t.Amount,
				t.Note,
				t.Date.Format(time.RFC3339),
				t.Currency,
				t.RefCurrencyAmount,
				t.PlannedPaymentID,
				string(t.Type),
			); err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
			}
		}

		if _, err := tx.Exec(
			`INSERT INTO export_history (owner, transaction_count) VALUES (?, ?)`,
			owner, len(txns),
		); err != nil {
			return fmt.Errorf("failed to record export: %w", err)
		}

		return nil
	})
}

// Transactions returns the stored snapshot for an owner, most recent first.
func (l *Ledger) Transactions(owner string) ([]lazyspender.Transaction, error) {
	rows, err := l.conn.Query(`
		SELECT id, owner, account, category, amount, note, date, currency, ref_currency_amount, planned_payment_id, type
		FROM transactions
		WHERE owner = ?
		ORDER BY date DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var txns []lazyspender.Transaction
	for rows.Next() {
		var t lazyspender.Transaction
		var note, plannedPaymentID sql.NullString
		var date, txType string

		if err := rows.Scan(
			&t.ID,
			&t.Owner,
			&t.Account,
			&t.Category,
			&t.Amount,
			&note,
			&date,
			&t.Currency,
			&t.RefCurrencyAmount,
			&plannedPaymentID,
			&txType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Note = note.String
		t.PlannedPaymentID = plannedPaymentID.String
		t.Type = lazyspender.TransactionType(txType)
		if t.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("failed to parse date of transaction %s: %w", t.ID, err)
		}

		txns = append(txns, t)
	}

	return txns, rows.Err()
}

// Stats represents ledger statistics for one owner.
type Stats struct {
	TotalTransactions int
	TotalIncome       float64
	TotalExpense      float64
	LastExport        sql.NullString
}

// GetStats retrieves snapshot statistics for an owner.
func (l *Ledger) GetStats(owner string) (*Stats, error) {
	var stats Stats

	err := l.conn.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE owner = ?`, owner,
	).Scan(&stats.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction count: %w", err)
	}

	err = l.conn.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE owner = ? AND type = 'INCOME'`, owner,
	).Scan(&stats.TotalIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to get income sum: %w", err)
	}

	err = l.conn.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE owner = ? AND type = 'EXPENSE'`, owner,
	).Scan(&stats.TotalExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense sum: %w", err)
	}

	err = l.conn.QueryRow(
		`SELECT MAX(exported_at) FROM export_history WHERE owner = ?`, owner,
	).Scan(&stats.LastExport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last export time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value, or "" when the key is absent.
func (l *Ledger) GetMetadata(key string) (string, error) {
	var value string
	err := l.conn.QueryRow(`SELECT value FROM ledger_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata sets a metadata value.
func (l *Ledger) SetMetadata(key, value string) error {
	_, err := l.conn.Exec(`
		INSERT INTO ledger_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
