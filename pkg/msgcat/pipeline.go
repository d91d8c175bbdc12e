package msgcat

import "context"

// Store is a destination relational store.
// Implementations are not required to be safe for concurrent use.
type Store interface {
	// Replace drops any existing table with the given name, recreates it with
	// the table's columns and inserts every row in order.
	Replace(ctx context.Context, name string, table *Table) error

	// Close releases the underlying connection.
	Close() error
}

// StoreOpener opens a Store for a destination string.
type StoreOpener func(ctx context.Context, destination string, batchSize int) (Store, error)

// Runner executes a complete load, transform and persist pass.
type Runner interface {
	Run(ctx context.Context, config PipelineConfig) error
}
