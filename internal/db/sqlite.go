package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vvka-141/msgcat/pkg/msgcat"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// maxSQLiteVariables bounds the placeholders in one statement
// (SQLITE_MAX_VARIABLE_NUMBER).
const maxSQLiteVariables = 32766

// SQLiteStore writes tables to a SQLite database file.
type SQLiteStore struct {
	db        *sqlx.DB
	batchSize int
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string, batchSize int) (*SQLiteStore, error) {
	if batchSize < 1 {
		batchSize = msgcat.DefaultBatchSize
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %v: %w", path, err, msgcat.ErrStoreFailed)
	}
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite %s: %v: %w", path, err, msgcat.ErrStoreFailed)
	}
	return &SQLiteStore{db: db, batchSize: batchSize}, nil
}

// Replace drops and recreates the table, then inserts all rows in batches.
func (s *SQLiteStore) Replace(ctx context.Context, name string, table *msgcat.Table) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %v: %w", err, msgcat.ErrStoreFailed)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, sqliteDialect.dropTable(name)); err != nil {
		return fmt.Errorf("drop table %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	if _, err := tx.ExecContext(ctx, sqliteDialect.createTable(name, table.Columns)); err != nil {
		return fmt.Errorf("create table %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}

	perBatch := s.rowsPerBatch(len(table.Columns))
	var stmt *sqlx.Stmt
	for start := 0; start < len(table.Rows); start += perBatch {
		end := min(start+perBatch, len(table.Rows))
		batch := table.Rows[start:end]

		args := make([]any, 0, len(batch)*len(table.Columns))
		for _, row := range batch {
			args = append(args, row...)
		}

		// full batches reuse one prepared statement; the tail gets its own
		if len(batch) == perBatch {
			if stmt == nil {
				stmt, err = tx.PreparexContext(ctx, sqliteDialect.insertRows(name, table.Columns, perBatch))
				if err != nil {
					return fmt.Errorf("prepare insert: %v: %w", err, msgcat.ErrStoreFailed)
				}
				defer stmt.Close()
			}
			_, err = stmt.ExecContext(ctx, args...)
		} else {
			_, err = tx.ExecContext(ctx, sqliteDialect.insertRows(name, table.Columns, len(batch)), args...)
		}
		if err != nil {
			return fmt.Errorf("insert rows %d-%d: %v: %w", start+1, end, err, msgcat.ErrStoreFailed)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %v: %w", err, msgcat.ErrStoreFailed)
	}
	return nil
}

func (s *SQLiteStore) rowsPerBatch(columns int) int {
	if columns == 0 {
		return s.batchSize
	}
	return max(1, min(s.batchSize, maxSQLiteVariables/columns))
}

// Snapshot reads the named table back in rowid order.
func (s *SQLiteStore) Snapshot(ctx context.Context, name string) (*msgcat.Table, error) {
	var info []struct {
		CID     int     `db:"cid"`
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
	}
	if err := s.db.SelectContext(ctx, &info, "SELECT * FROM pragma_table_info(?)", name); err != nil {
		return nil, fmt.Errorf("describe %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("table %q does not exist: %w", name, msgcat.ErrStoreFailed)
	}

	table := &msgcat.Table{Columns: make([]msgcat.Column, len(info))}
	names := make([]string, len(info))
	for i, c := range info {
		table.Columns[i] = msgcat.Column{Name: c.Name, Type: columnTypeFromDecl(c.Type)}
		names[i] = c.Name
	}

	rows, err := s.db.QueryxContext(ctx, sqliteDialect.selectAll(name, names)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("select %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	defer rows.Close()
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan %q: %v: %w", name, err, msgcat.ErrStoreFailed)
		}
		for j, v := range values {
			if b, ok := v.([]byte); ok {
				values[j] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	return table, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var (
	_ msgcat.Store = (*SQLiteStore)(nil)
	_ Snapshotter  = (*SQLiteStore)(nil)
)
