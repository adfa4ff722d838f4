package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TAPAN-2835/Business-Website/internal/domain/models"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteOptions tunes the connection. DefaultSQLiteOptions suits a single
// web process writing occasional messages.
type SQLiteOptions struct {
	WALMode     bool
	BusyTimeout time.Duration
	Synchronous string // OFF, NORMAL, FULL, EXTRA
}

// DefaultSQLiteOptions enables WAL with a 5s busy timeout.
func DefaultSQLiteOptions() SQLiteOptions {
	return SQLiteOptions{WALMode: true, BusyTimeout: 5 * time.Second, Synchronous: "NORMAL"}
}

// SQLite stores messages in a SQLite database via mattn/go-sqlite3.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and verifies
// the connection within timeout. ":memory:" is accepted.
func OpenSQLite(ctx context.Context, path string, opts SQLiteOptions, timeout time.Duration) (*SQLite, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on"
	if opts.BusyTimeout > 0 {
		dsn += fmt.Sprintf("&_busy_timeout=%d", opts.BusyTimeout.Milliseconds())
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer avoids "database is locked"; also required for :memory:.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	pragmas := []string{}
	if opts.WALMode && !isMemoryPath(path) {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	if opts.Synchronous != "" {
		pragmas = append(pragmas, "PRAGMA synchronous="+opts.Synchronous)
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return &SQLite{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	subject    TEXT NOT NULL,
	message    TEXT NOT NULL,
	channel    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	notified   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS contact_messages_created_at ON contact_messages (created_at DESC);
`

// EnsureSchema creates the table and index if missing.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, m models.ContactMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message, channel, created_at, notified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message, string(m.Channel), m.CreatedAt.UTC(), m.Notified)
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, name, email, phone, subject, message, channel, created_at, notified FROM contact_messages`

type scanner interface{ Scan(dest ...any) error }

func scanMessage(row scanner) (models.ContactMessage, error) {
	var (
		m       models.ContactMessage
		channel string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &channel, &m.CreatedAt, &m.Notified)
	if err != nil {
		return m, err
	}
	m.Channel = models.Channel(channel)
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (models.ContactMessage, error) {
	m, err := scanMessage(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContactMessage{}, ErrNotFound
	}
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (s *SQLite) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	q := selectColumns + ` ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLite) MarkNotified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET notified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close() error { return s.db.Close() }

// isMemoryPath reports whether path names an in-memory database.
func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
