// Package db provides the SQLite offline ledger: a local snapshot of
// exported transactions plus export history and metadata.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Offline snapshot of server transactions, replaced wholesale on export
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,               -- server-assigned ID
    owner TEXT NOT NULL,
    account TEXT NOT NULL,
    category TEXT NOT NULL,
    amount REAL NOT NULL,              -- magnitude; direction is in type
    note TEXT,
    date TEXT NOT NULL,                -- RFC 3339
    currency TEXT NOT NULL,
    ref_currency_amount REAL NOT NULL,
    planned_payment_id TEXT,
    type TEXT NOT NULL                 -- 'INCOME' or 'EXPENSE'
);

CREATE INDEX IF NOT EXISTS idx_transactions_owner_date
    ON transactions(owner, date);

-- One row per export run
CREATE TABLE IF NOT EXISTS export_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner TEXT NOT NULL,
    transaction_count INTEGER NOT NULL,
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Key-value metadata about the ledger
CREATE TABLE IF NOT EXISTS ledger_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
