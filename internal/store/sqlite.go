package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the document in a single row. The version column is
// a compare-and-swap token: a save only lands if nobody else saved since the
// document was loaded.
type SQLiteBackend struct {
	db *sqlx.DB
}

type documentRow struct {
	Body    string `db:"body"`
	Version int64  `db:"version"`
}

func OpenSQLite(dsn string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  body TEXT NOT NULL,
  version INTEGER NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteBackend) Load(ctx context.Context) (*Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row, `SELECT body, version FROM documents WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	doc, err := decode([]byte(row.Body))
	if err != nil {
		return nil, err
	}
	doc.version = row.Version
	return doc, nil
}

func (s *SQLiteBackend) Save(ctx context.Context, doc *Document) error {
	b, err := encode(doc)
	if err != nil {
		return err
	}
	var res sql.Result
	if doc.version == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO documents(id, body, version, updated_at)
			VALUES (1, ?, 1, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO NOTHING
		`, string(b))
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE documents
			SET body = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
			WHERE id = 1 AND version = ?
		`, string(b), doc.version)
	}
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrConflict
	}
	doc.version++
	return nil
}

// Version returns the currently persisted version, 0 when empty.
func (s *SQLiteBackend) Version(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.GetContext(ctx, &v, `SELECT version FROM documents WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }
