package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// maxEntries caps the ledger; the oldest rows are pruned on insert so the
// table stays bounded over long sessions.
const maxEntries = 1000

// Ledger records fired actions in a SQLite database, newest first.
type Ledger struct {
	conn *sql.DB
	path string
}

// Entry is one recorded firing.
type Entry struct {
	ID           int64
	FiredAt      time.Time
	RuleID       string
	Item         string
	Attribute    string
	Price        float64
	EvidencePath string
	Account      string
}

// Open opens or creates the ledger database at the specified path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	// SQLite works best with a single connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	l := &Ledger{conn: conn, path: dbPath}
	if err := l.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) migrate() error {
	_, err := l.conn.Exec(`
		CREATE TABLE IF NOT EXISTS firings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fired_at DATETIME NOT NULL,
			rule_id TEXT NOT NULL,
			item TEXT NOT NULL,
			attribute TEXT,
			price REAL NOT NULL DEFAULT 0,
			evidence_path TEXT,
			account TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_firings_fired_at ON firings(fired_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate ledger schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}

// Record inserts one firing and prunes entries beyond the cap.
func (l *Ledger) Record(entry Entry) (int64, error) {
	firedAt := entry.FiredAt
	if firedAt.IsZero() {
		firedAt = time.Now()
	}

	result, err := l.conn.Exec(`
		INSERT INTO firings (fired_at, rule_id, item, attribute, price, evidence_path, account)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, firedAt, entry.RuleID, entry.Item, entry.Attribute, entry.Price, entry.EvidencePath, entry.Account)
	if err != nil {
		return 0, fmt.Errorf("failed to insert firing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get firing id: %w", err)
	}

	_, err = l.conn.Exec(`
		DELETE FROM firings WHERE id NOT IN (
			SELECT id FROM firings ORDER BY fired_at DESC, id DESC LIMIT ?
		)
	`, maxEntries)
	if err != nil {
		return id, fmt.Errorf("failed to prune ledger: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 || limit > maxEntries {
		limit = maxEntries
	}

	rows, err := l.conn.Query(`
		SELECT id, fired_at, rule_id, item, attribute, price, evidence_path, account
		FROM firings ORDER BY fired_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query firings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var attribute, evidencePath, account sql.NullString
		if err := rows.Scan(&e.ID, &e.FiredAt, &e.RuleID, &e.Item, &attribute, &e.Price, &evidencePath, &account); err != nil {
			return nil, fmt.Errorf("failed to scan firing: %w", err)
		}
		e.Attribute = attribute.String
		e.EvidencePath = evidencePath.String
		e.Account = account.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded firings.
func (l *Ledger) Count() (int, error) {
	var count int
	if err := l.conn.QueryRow(`SELECT COUNT(*) FROM firings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count firings: %w", err)
	}
	return count, nil
}
