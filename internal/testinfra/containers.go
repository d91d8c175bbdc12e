// Package testinfra starts disposable PostgreSQL servers for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultImage     = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "msgcat"

	// EnvImage lets callers override DefaultImage, e.g. to test against an older server.
	EnvImage = "MSGCAT_TEST_PG_IMAGE"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

type options struct {
	image    string
	database string
}

// Option customizes StartPostgres.
type Option func(*options)

func WithImage(image string) Option {
	return func(o *options) { o.image = image }
}

func WithDatabase(name string) Option {
	return func(o *options) { o.database = name }
}

// StartPostgres starts a PostgreSQL container and returns it with a
// connection URI that pgx and db.ParseDestination both accept.
func StartPostgres(ctx context.Context, opts ...Option) (*PostgresContainer, error) {
	o := options{image: DefaultImage, database: PostgresDB}
	for _, opt := range opts {
		opt(&o)
	}

	customizers := []testcontainers.ContainerCustomizer{
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(o.database),
		testcontainers.WithWaitStrategy(
			// the server restarts once after initdb
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		),
	}

	ctr, err := postgres.Run(ctx, o.image, customizers...)
	if err != nil {
		return nil, fmt.Errorf("start postgres (%s): %w", o.image, err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}
