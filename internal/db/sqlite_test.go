package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/msgcat/internal/checksum"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

func sampleTable() *msgcat.Table {
	return &msgcat.Table{
		Columns: []msgcat.Column{
			{Name: "id", Type: msgcat.ColumnInteger},
			{Name: "message", Type: msgcat.ColumnText},
			{Name: "original", Type: msgcat.ColumnText},
			{Name: "food", Type: msgcat.ColumnText},
			{Name: "water", Type: msgcat.ColumnInteger},
		},
		Rows: [][]any{
			{int64(1), "need food", nil, "1", int64(0)},
			{int64(2), "need water", "bezwen dlo", "0", int64(1)},
		},
	}
}

func openTempSQLite(t *testing.T, batchSize int) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"), batchSize)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_ReplaceAndSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t, 10)

	require.NoError(t, store.Replace(ctx, "disaster_messages", sampleTable()))

	got, err := store.Snapshot(ctx, "disaster_messages")
	require.NoError(t, err)
	assert.Equal(t, sampleTable().Columns, got.Columns)
	assert.Equal(t, sampleTable().Rows, got.Rows)
}

func TestSQLiteStore_ReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t, 10)

	require.NoError(t, store.Replace(ctx, "t", sampleTable()))

	smaller := &msgcat.Table{
		Columns: []msgcat.Column{{Name: "only", Type: msgcat.ColumnReal}},
		Rows:    [][]any{{1.5}},
	}
	require.NoError(t, store.Replace(ctx, "t", smaller))

	got, err := store.Snapshot(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, smaller.Columns, got.Columns)
	assert.Equal(t, [][]any{{1.5}}, got.Rows)
}

func TestSQLiteStore_ReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t, 10)
	calc := checksum.New()

	require.NoError(t, store.Replace(ctx, "t", sampleTable()))
	first, err := store.Snapshot(ctx, "t")
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, "t", sampleTable()))
	second, err := store.Snapshot(ctx, "t")
	require.NoError(t, err)

	assert.Equal(t, calc.CalculateTable(first), calc.CalculateTable(second))
}

func TestSQLiteStore_ReplaceInBatches(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t, 3)

	table := &msgcat.Table{
		Columns: []msgcat.Column{{Name: "id", Type: msgcat.ColumnInteger}, {Name: "label", Type: msgcat.ColumnText}},
	}
	for i := range 10 {
		table.Rows = append(table.Rows, []any{int64(i), fmt.Sprintf("row %d", i)})
	}

	require.NoError(t, store.Replace(ctx, "batched", table))

	got, err := store.Snapshot(ctx, "batched")
	require.NoError(t, err)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestSQLiteStore_ReplaceEmptyTable(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t, 10)

	empty := &msgcat.Table{Columns: []msgcat.Column{{Name: "id", Type: msgcat.ColumnInteger}}}
	require.NoError(t, store.Replace(ctx, "empty", empty))

	got, err := store.Snapshot(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, empty.Columns, got.Columns)
	assert.Empty(t, got.Rows)
}

func TestSQLiteStore_SnapshotMissingTable(t *testing.T) {
	store := openTempSQLite(t, 10)

	_, err := store.Snapshot(context.Background(), "nope")
	assert.True(t, errors.Is(err, msgcat.ErrStoreFailed))
}

func TestSQLiteStore_RowsPerBatch(t *testing.T) {
	s := &SQLiteStore{batchSize: 500}
	assert.Equal(t, 500, s.rowsPerBatch(40))
	assert.Equal(t, maxSQLiteVariables/100, s.rowsPerBatch(100))
	assert.Equal(t, 500, s.rowsPerBatch(0))

	huge := &SQLiteStore{batchSize: 10}
	assert.Equal(t, 1, huge.rowsPerBatch(maxSQLiteVariables+1))
}

func TestOpenSQLite_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "sub", "x.db")

	_, err := OpenSQLite(context.Background(), path, 10)
	assert.True(t, errors.Is(err, msgcat.ErrStoreFailed))
}

func TestOpenSQLite_DefaultBatchSize(t *testing.T) {
	store := openTempSQLite(t, 0)
	assert.Equal(t, msgcat.DefaultBatchSize, store.batchSize)
}
