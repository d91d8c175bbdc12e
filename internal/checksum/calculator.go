package checksum

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// Calculator is an interface for computing content checksums.
type Calculator interface {
	// CalculateRow computes a checksum of a row's cells.
	CalculateRow(row []any) string

	// CalculateTable computes a checksum of a table's schema and rows in order.
	CalculateTable(table *msgcat.Table) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRow computes SHA-256 of the canonical encoding of row.
func (c SHA256) CalculateRow(row []any) string {
	h := sha256.New()
	writeRow(h, row)
	return hex.EncodeToString(h.Sum(nil))
}

// CalculateTable computes SHA-256 over column names, column types and rows.
func (c SHA256) CalculateTable(table *msgcat.Table) string {
	h := sha256.New()
	writeLen(h, len(table.Columns))
	for _, col := range table.Columns {
		writeString(h, col.Name)
		writeLen(h, int(col.Type))
	}
	writeLen(h, len(table.Rows))
	for _, row := range table.Rows {
		writeRow(h, row)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Cell type tags. Each cell is written as tag followed by a fixed-width or
// length-prefixed payload, so concatenated encodings cannot collide.
const (
	tagNull byte = iota
	tagText
	tagInteger
	tagReal
)

func writeRow(h hash.Hash, row []any) {
	writeLen(h, len(row))
	for _, cell := range row {
		writeCell(h, cell)
	}
}

func writeCell(h hash.Hash, cell any) {
	var buf [9]byte
	switch v := cell.(type) {
	case nil:
		h.Write([]byte{tagNull})
	case string:
		h.Write([]byte{tagText})
		writeString(h, v)
	case int64:
		buf[0] = tagInteger
		binary.BigEndian.PutUint64(buf[1:], uint64(v))
		h.Write(buf[:])
	case float64:
		buf[0] = tagReal
		binary.BigEndian.PutUint64(buf[1:], math.Float64bits(v))
		h.Write(buf[:])
	default:
		h.Write([]byte{tagText})
		writeString(h, fmt.Sprint(v))
	}
}

func writeString(h hash.Hash, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

func writeLen(h hash.Hash, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}
