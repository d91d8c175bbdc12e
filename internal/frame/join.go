package frame

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// InnerJoin joins left and right on the key column.
//
// Output rows follow left row order; each left row is followed by its matches
// in right row order, so duplicate keys yield every pairing. Rows without a
// match on the other side, and rows whose key is missing, are dropped.
// Output columns are the left columns followed by the right columns without
// the key. Any other column name present on both sides is suffixed with
// JoinSuffixLeft / JoinSuffixRight.
func InnerJoin(left, right *msgcat.Table, key string) (*msgcat.Table, error) {
	li := left.ColumnIndex(key)
	if li < 0 {
		return nil, fmt.Errorf("left table has no %q column: %w", key, msgcat.ErrMissingColumn)
	}
	ri := right.ColumnIndex(key)
	if ri < 0 {
		return nil, fmt.Errorf("right table has no %q column: %w", key, msgcat.ErrMissingColumn)
	}
	if isNumeric(left.Columns[li].Type) != isNumeric(right.Columns[ri].Type) {
		return nil, fmt.Errorf("cannot join %s key with %s key on %q: %w",
			left.Columns[li].Type, right.Columns[ri].Type, key, msgcat.ErrMalformedInput)
	}

	columns := joinColumns(left, right, li, ri)

	index := make(map[string][]int, len(right.Rows))
	for i, row := range right.Rows {
		k, ok := keyOf(row[ri])
		if !ok {
			continue
		}
		index[k] = append(index[k], i)
	}

	out := &msgcat.Table{Columns: columns}
	for _, lrow := range left.Rows {
		k, ok := keyOf(lrow[li])
		if !ok {
			continue
		}
		for _, r := range index[k] {
			rrow := right.Rows[r]
			row := make([]any, 0, len(columns))
			row = append(row, lrow...)
			for j, cell := range rrow {
				if j != ri {
					row = append(row, cell)
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func joinColumns(left, right *msgcat.Table, li, ri int) []msgcat.Column {
	leftNames := make(map[string]bool, len(left.Columns))
	for j, c := range left.Columns {
		if j != li {
			leftNames[c.Name] = true
		}
	}
	rightNames := make(map[string]bool, len(right.Columns))
	for j, c := range right.Columns {
		if j != ri {
			rightNames[c.Name] = true
		}
	}

	columns := make([]msgcat.Column, 0, len(left.Columns)+len(right.Columns)-1)
	for j, c := range left.Columns {
		if j != li && rightNames[c.Name] {
			c.Name += msgcat.JoinSuffixLeft
		}
		columns = append(columns, c)
	}
	for j, c := range right.Columns {
		if j == ri {
			continue
		}
		if leftNames[c.Name] {
			c.Name += msgcat.JoinSuffixRight
		}
		columns = append(columns, c)
	}
	return columns
}

func isNumeric(t msgcat.ColumnType) bool {
	return t == msgcat.ColumnInteger || t == msgcat.ColumnReal
}

// keyOf returns the canonical join form of a key cell.
// Whole reals compare equal to integers of the same value.
func keyOf(cell any) (string, bool) {
	switch v := cell.(type) {
	case nil:
		return "", false
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}
