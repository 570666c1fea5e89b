// Package storage is the optional persistence boundary around the ledger
// store. It never changes the store's operation contracts: it loads a seed
// at startup and subscribes to the store, writing each post-mutation
// snapshot as one database transaction so balance and transaction list are
// always committed together.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/common"
	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS account (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	balance TEXT NOT NULL,
	account_number TEXT NOT NULL,
	account_holder_name TEXT NOT NULL,
	company_name TEXT NOT NULL,
	next_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	position INTEGER NOT NULL,
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	amount TEXT NOT NULL,
	date TEXT NOT NULL,
	category TEXT NOT NULL,
	status TEXT NOT NULL,
	type TEXT NOT NULL,
	recipient TEXT NOT NULL DEFAULT '',
	iban TEXT NOT NULL DEFAULT ''
);
`

// LedgerDB persists ledger snapshots in SQLite.
type LedgerDB struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the ledger database at dbPath.
func Open(dbPath string) (*LedgerDB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: empty database path", common.ErrInvalidConfig)
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &LedgerDB{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (l *LedgerDB) Close() error {
	return l.db.Close()
}

// LoadSeed reads the persisted account into a ledger seed. The second
// return value reports whether a persisted account exists; when it is
// false the caller should fall back to the demo seed.
func (l *LedgerDB) LoadSeed(ctx context.Context) (ledger.Seed, bool, error) {
	var seed ledger.Seed
	var balance string

	row := l.db.QueryRowContext(ctx, `
		SELECT balance, account_number, account_holder_name, company_name, next_id
		FROM account WHERE id = 1
	`)
	err := row.Scan(&balance, &seed.AccountNumber, &seed.AccountHolderName, &seed.CompanyName, &seed.NextID)
	if err == sql.ErrNoRows {
		return ledger.Seed{}, false, nil
	}
	if err != nil {
		return ledger.Seed{}, false, fmt.Errorf("failed to load account: %w", err)
	}

	seed.OpeningBalance, err = decimal.NewFromString(balance)
	if err != nil {
		return ledger.Seed{}, false, fmt.Errorf("%w: bad balance %q", common.ErrDatabaseCorrupted, balance)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, title, amount, date, category, status, type, recipient, iban
		FROM transactions ORDER BY position ASC
	`)
	if err != nil {
		return ledger.Seed{}, false, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var txn model.Transaction
		var amount, date string
		if err := rows.Scan(&txn.ID, &txn.Title, &amount, &date,
			&txn.Category, &txn.Status, &txn.Type, &txn.Recipient, &txn.IBAN); err != nil {
			return ledger.Seed{}, false, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return ledger.Seed{}, false, fmt.Errorf("%w: bad amount %q on %s", common.ErrDatabaseCorrupted, amount, txn.ID)
		}
		txn.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return ledger.Seed{}, false, fmt.Errorf("%w: bad date %q on %s", common.ErrDatabaseCorrupted, date, txn.ID)
		}
		seed.Transactions = append(seed.Transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return ledger.Seed{}, false, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return seed, true, nil
}

// SaveSnapshot writes a full snapshot in one database transaction. The
// ledger is small (one account, a short statement), so replacing the
// transaction rows wholesale is simpler and safer than diffing.
func (l *LedgerDB) SaveSnapshot(ctx context.Context, snap ledger.Snapshot) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO account (id, balance, account_number, account_holder_name, company_name, next_id)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			balance = excluded.balance,
			account_number = excluded.account_number,
			account_holder_name = excluded.account_holder_name,
			company_name = excluded.company_name,
			next_id = excluded.next_id
	`, snap.Balance.String(), snap.AccountNumber, snap.AccountHolderName, snap.CompanyName, snap.NextID)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (position, id, title, amount, date, category, status, type, recipient, iban)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range snap.Transactions {
		_, err = stmt.ExecContext(ctx,
			i,
			txn.ID,
			txn.Title,
			txn.Amount.String(),
			txn.Date.Format(time.RFC3339Nano),
			txn.Category,
			string(txn.Status),
			string(txn.Type),
			txn.Recipient,
			txn.IBAN,
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// Attach subscribes to the store and persists every snapshot it publishes.
// Returns the unsubscribe function. Persistence failures are logged, not
// raised: the in-memory store remains the source of truth for the session.
func (l *LedgerDB) Attach(ctx context.Context, store *ledger.Store) (detach func()) {
	return store.Subscribe(func(snap ledger.Snapshot) {
		if err := l.SaveSnapshot(ctx, snap); err != nil {
			slog.Error("failed to persist ledger snapshot",
				"db", l.dbPath,
				"error", err)
		}
	})
}
