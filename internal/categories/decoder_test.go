package categories

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/msgcat/internal/checksum"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

func joined(rows ...[]any) *msgcat.Table {
	return &msgcat.Table{
		Columns: []msgcat.Column{
			{Name: "id", Type: msgcat.ColumnInteger},
			{Name: "message", Type: msgcat.ColumnText},
			{Name: "categories", Type: msgcat.ColumnText},
		},
		Rows: rows,
	}
}

func TestTransform_LastColumnOnlyCoerced(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	res, err := tr.Transform(joined([]any{int64(1), "help", "food-1;water-0"}))
	require.NoError(t, err)

	want := &msgcat.Table{
		Columns: []msgcat.Column{
			{Name: "id", Type: msgcat.ColumnInteger},
			{Name: "message", Type: msgcat.ColumnText},
			{Name: "food", Type: msgcat.ColumnText},
			{Name: "water", Type: msgcat.ColumnInteger},
		},
		Rows: [][]any{{int64(1), "help", "1", int64(0)}},
	}
	if diff := cmp.Diff(want, res.Table); diff != "" {
		t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"food", "water"}, res.Schema.Names)
}

func TestTransform_CoerceAll(t *testing.T) {
	opts := msgcat.DefaultDecodeOptions()
	opts.Coercion = msgcat.CoerceAll
	tr := NewTransformer(opts, checksum.New())

	res, err := tr.Transform(joined([]any{int64(1), "help", "food-1;water-0"}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "help", int64(1), int64(0)}, res.Table.Rows[0])
	assert.Equal(t, msgcat.ColumnInteger, res.Table.Columns[2].Type)
	assert.Equal(t, msgcat.ColumnInteger, res.Table.Columns[3].Type)
}

func TestTransform_RemovesDuplicates(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	res, err := tr.Transform(joined(
		[]any{int64(1), "help", "food-1;water-0"},
		[]any{int64(1), "help", "food-1;water-0"},
		[]any{int64(1), "help", "food-0;water-0"},
		[]any{int64(2), "thirsty", "food-0;water-1"},
	))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Decoded)
	assert.Equal(t, 1, res.Duplicates)
	require.Equal(t, 3, res.Table.Len())
	assert.Equal(t, []any{int64(1), "help", "0", int64(0)}, res.Table.Rows[1])
}

func TestTransform_NamesFromFirstRowOnly(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	// second row lists different names; only its values are used
	res, err := tr.Transform(joined(
		[]any{int64(1), "help", "food-1;water-0"},
		[]any{int64(2), "other", "shelter-0;medical-1"},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "message", "food", "water"}, res.Table.ColumnNames())
	assert.Equal(t, []any{int64(2), "other", "0", int64(1)}, res.Table.Rows[1])
}

func TestTransform_RealValues(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	res, err := tr.Transform(joined(
		[]any{int64(1), "a", "food-1;water-0.5"},
		[]any{int64(2), "b", "food-0;water-1"},
	))
	require.NoError(t, err)
	assert.Equal(t, msgcat.ColumnReal, res.Table.Columns[3].Type)
	assert.Equal(t, 0.5, res.Table.Rows[0][3])
	assert.Equal(t, float64(1), res.Table.Rows[1][3])
}

func TestTransform_NaNValueIsMissing(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	res, err := tr.Transform(joined(
		[]any{int64(1), "a", "food-1;water-nan"},
		[]any{int64(2), "b", "food-0;water-1"},
	))
	require.NoError(t, err)
	assert.Equal(t, msgcat.ColumnReal, res.Table.Columns[3].Type)
	assert.Nil(t, res.Table.Rows[0][3])
	assert.Equal(t, float64(1), res.Table.Rows[1][3])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		table   *msgcat.Table
		wantErr error
		wantMsg string
	}{
		{
			name:    "no rows",
			table:   joined(),
			wantErr: msgcat.ErrNoRows,
		},
		{
			name:    "missing value",
			table:   joined([]any{int64(1), "a", "food-1;water-0"}, []any{int64(2), "b", nil}),
			wantErr: msgcat.ErrMalformedCategory,
			wantMsg: "row 2",
		},
		{
			name:    "short row",
			table:   joined([]any{int64(1), "a", "food-1;water-0"}, []any{int64(2), "b", "food-1"}),
			wantErr: msgcat.ErrMalformedCategory,
			wantMsg: "row 2",
		},
		{
			name:    "first row shorter than others",
			table:   joined([]any{int64(1), "a", "food-1"}, []any{int64(2), "b", "food-1;water-0"}),
			wantErr: msgcat.ErrMalformedCategory,
			wantMsg: "row 1",
		},
		{
			name:    "token without separator",
			table:   joined([]any{int64(1), "a", "food-1;water-0"}, []any{int64(2), "b", "food-1;water"}),
			wantErr: msgcat.ErrMalformedCategory,
			wantMsg: "row 2",
		},
		{
			name:    "non-numeric last value",
			table:   joined([]any{int64(1), "a", "food-1;water-x"}),
			wantErr: msgcat.ErrMalformedCategory,
			wantMsg: "water",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.table, msgcat.DefaultDecodeOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecode_NonNumericValueAllowedWhenNotCoerced(t *testing.T) {
	out, _, err := Decode(joined([]any{int64(1), "a", "food-x;water-0"}), msgcat.DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, []any{"x", int64(0)}, out.Rows[0])
}

func TestDecode_MissingColumn(t *testing.T) {
	opts := msgcat.DefaultDecodeOptions()
	opts.Column = "labels"

	_, _, err := Decode(joined([]any{int64(1), "a", "food-1"}), opts)
	assert.True(t, errors.Is(err, msgcat.ErrMissingColumn))
}

func TestTransform_CategoryCollidesWithMessageColumn(t *testing.T) {
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	_, err := tr.Transform(joined([]any{int64(1), "a", "message-1;water-0"}))
	assert.True(t, errors.Is(err, msgcat.ErrDuplicateColumn), "got %v", err)
}

func TestTransform_DoesNotModifyInput(t *testing.T) {
	in := joined([]any{int64(1), "help", "food-1;water-0"})
	tr := NewTransformer(msgcat.DefaultDecodeOptions(), checksum.New())

	_, err := tr.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "help", "food-1;water-0"}, in.Rows[0])
}
