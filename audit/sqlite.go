package audit

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink appends audit events to a sqlite database so operators can
// query history with plain SQL. Like every audit sink it is best-effort:
// insert failures are dropped silently.
type SQLiteSink struct {
	db *sql.DB
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	at         TEXT NOT NULL,
	action     TEXT NOT NULL,
	message    TEXT NOT NULL,
	pii_masked TEXT
);
CREATE INDEX IF NOT EXISTS idx_audit_events_action ON audit_events(action);
`

// NewSQLiteSink opens (or creates) the audit database at path. Use
// ":memory:" for an in-memory database.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Log(action, message string, sensitive ...string) {
	masked := ""
	if len(sensitive) > 0 && sensitive[0] != "" {
		masked = Mask(sensitive[0])
	}
	// Best-effort: the error is intentionally dropped.
	_, _ = s.db.Exec(
		`INSERT INTO audit_events (at, action, message, pii_masked) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), action, message, masked,
	)
}

// Count returns the number of recorded events for an action ("" = all).
func (s *SQLiteSink) Count(action string) (int, error) {
	var n int
	var err error
	if action == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM audit_events`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM audit_events WHERE action = ?`, action).Scan(&n)
	}
	return n, err
}

func (s *SQLiteSink) Close() error { return s.db.Close() }
