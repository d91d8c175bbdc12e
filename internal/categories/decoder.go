package categories

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/msgcat/internal/checksum"
	"github.com/vvka-141/msgcat/internal/frame"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// Result is the outcome of Transform.
type Result struct {
	Table      *msgcat.Table
	Schema     msgcat.CategorySchema
	Decoded    int // rows before duplicate removal
	Duplicates int // rows removed as exact duplicates
}

// Transformer widens a joined table: it decodes the category column, drops
// it, appends the decoded columns and removes duplicate rows.
type Transformer struct {
	opts msgcat.DecodeOptions
	calc checksum.Calculator
}

// NewTransformer creates a Transformer. calc supplies the row keys used for
// duplicate removal.
func NewTransformer(opts msgcat.DecodeOptions, calc checksum.Calculator) *Transformer {
	if calc == nil {
		panic("calc cannot be nil")
	}
	return &Transformer{opts: opts, calc: calc}
}

// Transform returns the widened, deduplicated table.
func (t *Transformer) Transform(joined *msgcat.Table) (*Result, error) {
	decoded, schema, err := Decode(joined, t.opts)
	if err != nil {
		return nil, err
	}

	rest, err := frame.DropColumn(joined, t.opts.Column)
	if err != nil {
		return nil, err
	}

	wide, err := frame.Concat(rest, decoded)
	if err != nil {
		return nil, err
	}

	deduped := frame.DropDuplicates(wide, t.calc)
	return &Result{
		Table:      deduped,
		Schema:     schema,
		Decoded:    wide.Len(),
		Duplicates: wide.Len() - deduped.Len(),
	}, nil
}

// Decode splits the encoded column of table into a table with one column per
// category, row-aligned with table.
//
// The number of category columns is the largest token count of any row. Names
// come from the first row, which must therefore carry that many tokens.
func Decode(table *msgcat.Table, opts msgcat.DecodeOptions) (*msgcat.Table, msgcat.CategorySchema, error) {
	schema, err := SchemaFromTable(table, opts)
	if err != nil {
		return nil, msgcat.CategorySchema{}, err
	}
	col := table.ColumnIndex(opts.Column)
	width := len(schema.Names)

	split := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		encoded, ok := row[col].(string)
		if !ok {
			return nil, msgcat.CategorySchema{}, fmt.Errorf("row %d: %q is %v, not a category string: %w",
				i+1, opts.Column, row[col], msgcat.ErrMalformedCategory)
		}
		split[i] = strings.Split(encoded, opts.ItemSeparator)
		if len(split[i]) > width {
			return nil, msgcat.CategorySchema{}, fmt.Errorf("row %d: %d categories, row 1 has only %d: %w",
				i+1, len(split[i]), width, msgcat.ErrMalformedCategory)
		}
	}

	out := &msgcat.Table{
		Columns: make([]msgcat.Column, width),
		Rows:    make([][]any, len(split)),
	}
	for j, name := range schema.Names {
		out.Columns[j] = msgcat.Column{Name: name, Type: msgcat.ColumnText}
	}
	for i, tokens := range split {
		if len(tokens) < width {
			return nil, msgcat.CategorySchema{}, fmt.Errorf("row %d: %d categories, expected %d: %w",
				i+1, len(tokens), width, msgcat.ErrMalformedCategory)
		}
		row := make([]any, width)
		for j, token := range tokens {
			_, value, err := splitToken(token, opts.ValueSeparator)
			if err != nil {
				return nil, msgcat.CategorySchema{}, fmt.Errorf("row %d: %w", i+1, err)
			}
			row[j] = value
		}
		out.Rows[i] = row
	}

	for _, j := range coercedColumns(width, opts.Coercion) {
		if err := toNumeric(out, j); err != nil {
			return nil, msgcat.CategorySchema{}, err
		}
	}
	return out, schema, nil
}

func coercedColumns(width int, mode msgcat.CoercionMode) []int {
	if width == 0 {
		return nil
	}
	if mode == msgcat.CoerceAll {
		cols := make([]int, width)
		for j := range cols {
			cols[j] = j
		}
		return cols
	}
	return []int{width - 1}
}

// toNumeric converts column j to int64 when every value is an integer and to
// float64 otherwise.
func toNumeric(table *msgcat.Table, j int) error {
	ints := make([]int64, len(table.Rows))
	allInt := true
	for i, row := range table.Rows {
		s := strings.TrimSpace(row[j].(string))
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			allInt = false
			break
		}
		ints[i] = n
	}
	if allInt {
		for i, row := range table.Rows {
			row[j] = ints[i]
		}
		table.Columns[j].Type = msgcat.ColumnInteger
		return nil
	}

	reals := make([]any, len(table.Rows))
	for i, row := range table.Rows {
		s := strings.TrimSpace(row[j].(string))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("row %d: %s value %q is not numeric: %w",
				i+1, table.Columns[j].Name, row[j], msgcat.ErrMalformedCategory)
		}
		if math.IsNaN(f) {
			continue
		}
		reals[i] = f
	}
	for i, row := range table.Rows {
		row[j] = reals[i]
	}
	table.Columns[j].Type = msgcat.ColumnReal
	return nil
}
