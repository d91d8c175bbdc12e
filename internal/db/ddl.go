package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// dialect holds the SQL spelling differences between backends.
type dialect struct {
	quote   func(name string) string
	typeFor func(t msgcat.ColumnType) string
}

var sqliteDialect = dialect{
	quote: func(name string) string {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	},
	typeFor: func(t msgcat.ColumnType) string {
		switch t {
		case msgcat.ColumnInteger:
			return "INTEGER"
		case msgcat.ColumnReal:
			return "REAL"
		default:
			return "TEXT"
		}
	},
}

var postgresDialect = dialect{
	quote: func(name string) string {
		return pgx.Identifier{name}.Sanitize()
	},
	typeFor: func(t msgcat.ColumnType) string {
		switch t {
		case msgcat.ColumnInteger:
			return "BIGINT"
		case msgcat.ColumnReal:
			return "DOUBLE PRECISION"
		default:
			return "TEXT"
		}
	},
}

func (d dialect) dropTable(name string) string {
	return "DROP TABLE IF EXISTS " + d.quote(name)
}

func (d dialect) createTable(name string, columns []msgcat.Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.quote(c.Name) + " " + d.typeFor(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(name), strings.Join(defs, ", "))
}

func (d dialect) selectAll(name string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quote(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), d.quote(name))
}

// insertRows returns a multi-row INSERT with ? placeholders for rows rows.
func (d dialect) insertRows(name string, columns []msgcat.Column, rows int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quote(c.Name)
	}
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", d.quote(name), strings.Join(quoted, ", "))
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}
	return b.String()
}

func columnTypeFromDecl(decl string) msgcat.ColumnType {
	switch strings.ToUpper(decl) {
	case "INTEGER", "INT", "BIGINT", "INT8":
		return msgcat.ColumnInteger
	case "REAL", "FLOAT", "DOUBLE PRECISION", "FLOAT8", "DOUBLE":
		return msgcat.ColumnReal
	default:
		return msgcat.ColumnText
	}
}
