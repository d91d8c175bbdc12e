package frame

import (
	"fmt"

	"github.com/vvka-141/msgcat/internal/checksum"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// DropColumn returns table without the named column.
func DropColumn(table *msgcat.Table, name string) (*msgcat.Table, error) {
	idx := table.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("cannot drop %q: %w", name, msgcat.ErrMissingColumn)
	}

	out := &msgcat.Table{
		Columns: make([]msgcat.Column, 0, len(table.Columns)-1),
		Rows:    make([][]any, len(table.Rows)),
	}
	out.Columns = append(out.Columns, table.Columns[:idx]...)
	out.Columns = append(out.Columns, table.Columns[idx+1:]...)
	for i, row := range table.Rows {
		r := make([]any, 0, len(row)-1)
		r = append(r, row[:idx]...)
		r = append(r, row[idx+1:]...)
		out.Rows[i] = r
	}
	return out, nil
}

// Concat places the columns of right after those of left, pairing rows by position.
func Concat(left, right *msgcat.Table) (*msgcat.Table, error) {
	if len(left.Rows) != len(right.Rows) {
		return nil, fmt.Errorf("cannot concatenate %d rows with %d rows", len(left.Rows), len(right.Rows))
	}

	seen := make(map[string]bool, len(left.Columns)+len(right.Columns))
	columns := make([]msgcat.Column, 0, len(left.Columns)+len(right.Columns))
	for _, c := range append(append([]msgcat.Column{}, left.Columns...), right.Columns...) {
		if seen[c.Name] {
			return nil, fmt.Errorf("column %q appears more than once: %w", c.Name, msgcat.ErrDuplicateColumn)
		}
		seen[c.Name] = true
		columns = append(columns, c)
	}

	out := &msgcat.Table{Columns: columns, Rows: make([][]any, len(left.Rows))}
	for i := range left.Rows {
		row := make([]any, 0, len(columns))
		row = append(row, left.Rows[i]...)
		row = append(row, right.Rows[i]...)
		out.Rows[i] = row
	}
	return out, nil
}

// DropDuplicates returns table without rows that exactly repeat an earlier row.
// The first occurrence of each row is kept and row order is preserved.
// Cells of different types never compare equal, and nil equals nil.
func DropDuplicates(table *msgcat.Table, calc checksum.Calculator) *msgcat.Table {
	seen := make(map[string]struct{}, len(table.Rows))
	out := &msgcat.Table{
		Columns: append([]msgcat.Column(nil), table.Columns...),
		Rows:    make([][]any, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		key := calc.CalculateRow(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	return out
}
