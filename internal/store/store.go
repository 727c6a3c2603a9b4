// Package store handles SQLite persistence for survey responses.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/facilita-cr/facilita/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrSchemaMismatch reports that the responses table does not carry the
// expected ordered column set. Reads and writes fail fast on open instead
// of failing deep inside aggregation.
var ErrSchemaMismatch = errors.New("response schema mismatch")

// Store wraps SQLite access for survey responses.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database, applies migrations, and
// verifies the response schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	if err := store.checkSchema(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on schema failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	cols := make([]string, 0, model.NumColumns)
	for _, name := range model.ColumnNames() {
		cols = append(cols, fmt.Sprintf("%q TEXT NOT NULL", name))
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS responses (
			id INTEGER PRIMARY KEY,
			%s
		);`, strings.Join(cols, ",\n\t\t\t")),
		`CREATE INDEX IF NOT EXISTS idx_responses_submitted_at ON responses(submitted_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkSchema compares the live table layout against the expected ordered
// column set once, at open time.
func (s *Store) checkSchema() error {
	rows, err := s.db.Query(`PRAGMA table_info(responses)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var names []string
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			deflt      sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &deflt, &primaryKey); err != nil {
			return err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	expected := append([]string{"id"}, model.ColumnNames()...)
	if len(names) != len(expected) {
		return fmt.Errorf("%w: expected %d columns, found %d", ErrSchemaMismatch, len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrSchemaMismatch, i, names[i], name)
		}
	}
	return nil
}

// Append stores one response as a single new row. There is no update or
// dedup path; every successful call adds exactly one row.
func (s *Store) Append(ctx context.Context, r model.Response) error {
	row := r.Row()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", model.NumColumns), ", ")
	quoted := make([]string, 0, model.NumColumns)
	for _, name := range model.ColumnNames() {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	query := fmt.Sprintf(`INSERT INTO responses (%s) VALUES (%s)`,
		strings.Join(quoted, ", "), placeholders)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append response: %w", err)
	}
	return nil
}

// ListAll reads the full store snapshot in submission order. Fields are
// trimmed on the way out to guard against drift in hand-edited data.
func (s *Store) ListAll(ctx context.Context) ([]model.Response, error) {
	quoted := make([]string, 0, model.NumColumns)
	for _, name := range model.ColumnNames() {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	query := fmt.Sprintf(`SELECT %s FROM responses ORDER BY id ASC`, strings.Join(quoted, ", "))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.Response
	for rows.Next() {
		cells := make([]string, model.NumColumns)
		dest := make([]any, model.NumColumns)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r, err := model.ResponseFromRow(cells)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		r.Trim()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
