package msgcat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ColumnType is the storage type of a table column.
type ColumnType int

const (
	ColumnText    ColumnType = iota // string cells
	ColumnInteger                   // int64 cells
	ColumnReal                      // float64 cells
)

// String returns a human-readable string representation of the ColumnType.
func (t ColumnType) String() string {
	switch t {
	case ColumnText:
		return "text"
	case ColumnInteger:
		return "integer"
	case ColumnReal:
		return "real"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an in-memory, row-ordered relation.
//
// Each cell is nil (missing value), string, int64 or float64, matching the
// Type of its column. Rows are positional: Rows[i][j] belongs to Columns[j].
type Table struct {
	Columns []Column
	Rows    [][]any
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// CategorySchema is the result of category schema inference.
//
// Names are derived once from the first row's encoded string. Every other row
// is assumed to list the same categories in the same order; rows are not
// checked against the names.
type CategorySchema struct {
	Names []string
}

// CoercionMode selects which decoded category columns are converted to numbers.
type CoercionMode string

const (
	// CoerceLast converts only the last category column; the others stay text.
	CoerceLast CoercionMode = "last"

	// CoerceAll converts every category column.
	CoerceAll CoercionMode = "all"
)

// ParseCoercionMode parses a coercion mode name.
func ParseCoercionMode(s string) (CoercionMode, error) {
	switch CoercionMode(strings.ToLower(strings.TrimSpace(s))) {
	case CoerceLast:
		return CoerceLast, nil
	case CoerceAll:
		return CoerceAll, nil
	default:
		return "", fmt.Errorf("unknown coercion mode %q (expected %q or %q): %w", s, CoerceLast, CoerceAll, ErrInvalidConfig)
	}
}

// DecodeOptions controls how the encoded category column is decoded.
type DecodeOptions struct {
	Column         string       `validate:"required"`
	ItemSeparator  string       `validate:"required"`
	ValueSeparator string       `validate:"required"`
	Coercion       CoercionMode `validate:"oneof=last all"`
}

// DefaultDecodeOptions returns the decode options used by the CLI.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Column:         DefaultCategoryColumn,
		ItemSeparator:  DefaultItemSeparator,
		ValueSeparator: DefaultValueSeparator,
		Coercion:       CoerceLast,
	}
}

// PipelineConfig contains all parameters needed for a pipeline run.
type PipelineConfig struct {
	// MessagesPath is the CSV file with the id column and message text fields
	MessagesPath string `validate:"required"`

	// CategoriesPath is the CSV file with the id column and the encoded category string
	CategoriesPath string `validate:"required"`

	// Destination is a SQLite file path or a PostgreSQL connection URI
	Destination string `validate:"required"`

	// TableName is the table replaced in the destination store
	TableName string `validate:"required"`

	// IDColumn is the join key present in both inputs
	IDColumn string `validate:"required"`

	// Decode controls category decoding
	Decode DecodeOptions

	// BatchSize is the number of rows per insert batch
	BatchSize int `validate:"gte=1"`

	// Verify reads the table back after writing and compares fingerprints
	Verify bool

	// Verbose enables detailed logging, including the written table's fingerprint
	Verbose bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the PipelineConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *PipelineConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s failed %q check: %w", fe.Namespace(), fe.Tag(), ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
