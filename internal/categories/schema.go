package categories

import (
	"fmt"
	"strings"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// InferSchema derives the category names from one encoded string.
// Each token's trailing value suffix (the separator and everything after it)
// is removed; names keep the token order.
func InferSchema(encoded string, opts msgcat.DecodeOptions) (msgcat.CategorySchema, error) {
	tokens := strings.Split(encoded, opts.ItemSeparator)
	names := make([]string, len(tokens))
	for i, token := range tokens {
		name, _, err := splitToken(token, opts.ValueSeparator)
		if err != nil {
			return msgcat.CategorySchema{}, fmt.Errorf("token %d: %w", i+1, err)
		}
		names[i] = name
	}
	return msgcat.CategorySchema{Names: names}, nil
}

// SchemaFromTable infers the category schema from the first row of table's
// opts.Column.
func SchemaFromTable(table *msgcat.Table, opts msgcat.DecodeOptions) (msgcat.CategorySchema, error) {
	col := table.ColumnIndex(opts.Column)
	if col < 0 {
		return msgcat.CategorySchema{}, fmt.Errorf("no %q column: %w", opts.Column, msgcat.ErrMissingColumn)
	}
	if table.Len() == 0 {
		return msgcat.CategorySchema{}, fmt.Errorf("cannot infer categories from %q: %w", opts.Column, msgcat.ErrNoRows)
	}
	encoded, ok := table.Rows[0][col].(string)
	if !ok {
		return msgcat.CategorySchema{}, fmt.Errorf("row 1: %q is %v, not a category string: %w",
			opts.Column, table.Rows[0][col], msgcat.ErrMalformedCategory)
	}
	schema, err := InferSchema(encoded, opts)
	if err != nil {
		return msgcat.CategorySchema{}, fmt.Errorf("row 1: %w", err)
	}
	return schema, nil
}

// splitToken splits "name-value" at the last separator.
func splitToken(token, sep string) (name, value string, err error) {
	idx := strings.LastIndex(token, sep)
	if idx < 0 {
		return "", "", fmt.Errorf("%q has no %q separator: %w", token, sep, msgcat.ErrMalformedCategory)
	}
	name, value = token[:idx], token[idx+len(sep):]
	if name == "" {
		return "", "", fmt.Errorf("%q has an empty name: %w", token, msgcat.ErrMalformedCategory)
	}
	return name, value, nil
}
