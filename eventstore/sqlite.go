package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the log in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) a store at path. Use
// ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The store serializes appends through a transaction; a single
	// connection avoids table-lock contention between them.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, expected uint64, events []*Event) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var tail uint64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events`).Scan(&tail); err != nil {
		return 0, fmt.Errorf("tail: %w", err)
	}
	if tail != expected {
		return tail, ErrSequenceConflict
	}
	if err := checkContiguous(tail, events); err != nil {
		return tail, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (seq, id, kind, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return tail, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.ExecContext(ctx, e.Seq, e.ID, e.Kind, string(e.Data),
			e.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return tail, fmt.Errorf("insert seq %d: %w", e.Seq, err)
		}
		tail = e.Seq
	}

	if err := tx.Commit(); err != nil {
		return tail, fmt.Errorf("commit: %w", err)
	}
	return tail, nil
}

func (s *SQLiteStore) Read(ctx context.Context, from uint64) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, kind, data, created_at FROM events WHERE seq >= ? ORDER BY seq`, from)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		var (
			e         Event
			data      string
			createdAt string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.Kind, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Data = []byte(data)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("seq %d: bad timestamp %q: %w", e.Seq, createdAt, err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LastSeq(ctx context.Context) (uint64, error) {
	var tail uint64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events`).Scan(&tail)
	if err != nil {
		return 0, fmt.Errorf("tail: %w", err)
	}
	return tail, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
