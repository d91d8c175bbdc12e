// Package testing holds helpers shared by msgcat tests: PostgreSQL
// discovery and the list of destinations store tests run against.
package testing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vvka-141/msgcat/internal/testinfra"
)

// EnvTestPG names an existing PostgreSQL server to use instead of a container.
const EnvTestPG = "MSGCAT_TEST_PG"

const testDatabase = "msgcat_test"

var (
	pgOnce sync.Once
	pgConn string
	pgErr  error
)

// postgresConn starts at most one container per test binary.
func postgresConn() (string, error) {
	pgOnce.Do(func() {
		opts := []testinfra.Option{testinfra.WithDatabase(testDatabase)}
		if img := os.Getenv(testinfra.EnvImage); img != "" {
			opts = append(opts, testinfra.WithImage(img))
		}
		container, err := testinfra.StartPostgres(context.Background(), opts...)
		if err != nil {
			pgErr = err
			return
		}
		pgConn = container.ConnString
	})
	return pgConn, pgErr
}

// GetTestConnectionString returns a PostgreSQL connection URI.
// Priority: MSGCAT_TEST_PG env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(EnvTestPG); connString != "" {
		return connString
	}

	connString, err := postgresConn()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", EnvTestPG, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// Destination is a named store target for table-driven store tests.
type Destination struct {
	Name string
	DSN  string
}

// Destinations returns a fresh SQLite file and, unless -short is set or no
// server can be reached, a PostgreSQL URI.
func Destinations(t *testing.T) []Destination {
	t.Helper()

	dests := []Destination{{Name: "sqlite", DSN: filepath.Join(t.TempDir(), "msgcat.db")}}
	if testing.Short() {
		return dests
	}
	if connString := os.Getenv(EnvTestPG); connString != "" {
		return append(dests, Destination{Name: "postgres", DSN: connString})
	}
	if connString, err := postgresConn(); err == nil {
		dests = append(dests, Destination{Name: "postgres", DSN: connString})
	} else {
		t.Logf("postgres destination skipped: %v", err)
	}
	return dests
}

// UniqueTableName returns a table name that does not collide with other
// tests sharing the same PostgreSQL database.
func UniqueTableName(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}
