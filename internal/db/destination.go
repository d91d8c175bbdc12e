package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// Driver identifies a store backend.
type Driver int

const (
	DriverSQLite Driver = iota
	DriverPostgres
)

// String returns a human-readable string representation of the Driver.
func (d Driver) String() string {
	switch d {
	case DriverSQLite:
		return "SQLite"
	case DriverPostgres:
		return "PostgreSQL"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Destination is a parsed destination string.
type Destination struct {
	Driver Driver
	// DSN is the file path for SQLite and the connection URI for PostgreSQL.
	DSN string
}

// ParseDestination parses a destination string.
// Anything that is not a PostgreSQL URI is treated as a SQLite file path.
func ParseDestination(s string) (Destination, error) {
	if strings.TrimSpace(s) == "" {
		return Destination{}, fmt.Errorf("destination is empty: %w", msgcat.ErrInvalidConfig)
	}

	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return Destination{Driver: DriverPostgres, DSN: s}, nil
	}

	path := s
	switch {
	case strings.HasPrefix(s, "sqlite:///"):
		path = strings.TrimPrefix(s, "sqlite:///")
	case strings.HasPrefix(s, "sqlite://"):
		path = strings.TrimPrefix(s, "sqlite://")
	case strings.HasPrefix(s, "sqlite:"):
		path = strings.TrimPrefix(s, "sqlite:")
	}
	if path == "" {
		return Destination{}, fmt.Errorf("destination %q has no file path: %w", s, msgcat.ErrInvalidConfig)
	}
	return Destination{Driver: DriverSQLite, DSN: path}, nil
}

// Snapshotter reads a stored table back.
type Snapshotter interface {
	Snapshot(ctx context.Context, name string) (*msgcat.Table, error)
}

// Open opens the store for destination. It satisfies msgcat.StoreOpener.
func Open(ctx context.Context, destination string, batchSize int) (msgcat.Store, error) {
	dest, err := ParseDestination(destination)
	if err != nil {
		return nil, err
	}

	switch dest.Driver {
	case DriverPostgres:
		return OpenPostgres(ctx, dest.DSN)
	default:
		return OpenSQLite(ctx, dest.DSN, batchSize)
	}
}

var _ msgcat.StoreOpener = Open
