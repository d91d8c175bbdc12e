package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// PostgresStore writes tables to a PostgreSQL database using COPY.
type PostgresStore struct {
	conn *pgx.Conn
}

// OpenPostgres connects to the database named by the connection URI.
func OpenPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v: %w", err, msgcat.ErrStoreFailed)
	}
	return &PostgresStore{conn: conn}, nil
}

// Replace drops and recreates the table and copies all rows in a single transaction.
func (s *PostgresStore) Replace(ctx context.Context, name string, table *msgcat.Table) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %v: %w", err, msgcat.ErrStoreFailed)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, postgresDialect.dropTable(name)); err != nil {
		return fmt.Errorf("drop table %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	if _, err := tx.Exec(ctx, postgresDialect.createTable(name, table.Columns)); err != nil {
		return fmt.Errorf("create table %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{name}, table.ColumnNames(), pgx.CopyFromRows(table.Rows))
	if err != nil {
		return fmt.Errorf("copy into %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	if copied != int64(len(table.Rows)) {
		return fmt.Errorf("copy into %q: wrote %d of %d rows: %w", name, copied, len(table.Rows), msgcat.ErrStoreFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %v: %w", err, msgcat.ErrStoreFailed)
	}
	return nil
}

// Snapshot reads the named table back in physical order.
func (s *PostgresStore) Snapshot(ctx context.Context, name string) (*msgcat.Table, error) {
	rows, err := s.conn.Query(ctx, "SELECT * FROM "+postgresDialect.quote(name)+" ORDER BY ctid")
	if err != nil {
		return nil, fmt.Errorf("select %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	table := &msgcat.Table{Columns: make([]msgcat.Column, len(fields))}
	for i, f := range fields {
		table.Columns[i] = msgcat.Column{Name: f.Name, Type: columnTypeFromOID(s.conn.TypeMap(), f.DataTypeOID)}
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %q: %v: %w", name, err, msgcat.ErrStoreFailed)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %v: %w", name, err, msgcat.ErrStoreFailed)
	}
	return table, nil
}

func columnTypeFromOID(m *pgtype.Map, oid uint32) msgcat.ColumnType {
	t, ok := m.TypeForOID(oid)
	if !ok {
		return msgcat.ColumnText
	}
	return columnTypeFromDecl(strings.ToUpper(t.Name))
}

// Close closes the connection.
func (s *PostgresStore) Close() error {
	return s.conn.Close(context.Background())
}

var (
	_ msgcat.Store = (*PostgresStore)(nil)
	_ Snapshotter  = (*PostgresStore)(nil)
)
