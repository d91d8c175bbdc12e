// Package reader decodes CSV inputs into msgcat tables.
package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/msgcat/internal/files/filesystem"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// missingMarkers are cell values read as a missing value (nil).
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Reader reads CSV files through a FileSystemProvider.
type Reader struct {
	fs filesystem.FileSystemProvider
}

// New creates a Reader backed by fsProvider.
func New(fsProvider filesystem.FileSystemProvider) *Reader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Reader{fs: fsProvider}
}

// ReadCSV reads the CSV file at path into a table.
func (r *Reader) ReadCSV(path string) (*msgcat.Table, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, msgcat.ErrInputNotFound)
		}
		return nil, fmt.Errorf("stat %s: %v: %w", path, err, msgcat.ErrInputNotFound)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, msgcat.ErrInputNotFound)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row: %w", path, msgcat.ErrMalformedInput)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, msgcat.ErrInputNotFound)
		}
		return nil, fmt.Errorf("open %s: %v: %w", path, err, msgcat.ErrInputNotFound)
	}
	defer f.Close()

	table, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// Decode reads a header row and records from rd.
//
// Column types are inferred from the data: a column whose non-missing cells
// all parse as int64 is ColumnInteger, one whose cells all parse as float64 is
// ColumnReal, anything else is ColumnText. Missing cells become nil. Records
// shorter than the header are padded with nil; longer records are an error.
// Repeated header names are made unique by appending ".1", ".2", ...
func Decode(rd io.Reader) (*msgcat.Table, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row: %w", msgcat.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, msgcat.ErrMalformedInput)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	names := uniqueNames(header)

	var records [][]string
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read record %d: %v: %w", line, err, msgcat.ErrMalformedInput)
		}
		if len(record) > len(names) {
			return nil, fmt.Errorf("record %d: expected %d fields, saw %d: %w",
				line, len(names), len(record), msgcat.ErrMalformedInput)
		}
		records = append(records, record)
	}

	table := &msgcat.Table{
		Columns: make([]msgcat.Column, len(names)),
		Rows:    make([][]any, len(records)),
	}
	for i := range table.Rows {
		table.Rows[i] = make([]any, len(names))
	}

	column := make([]string, len(records))
	for j, name := range names {
		for i, record := range records {
			if j < len(record) {
				column[i] = record[j]
			} else {
				column[i] = ""
			}
		}
		typ := InferColumnType(column)
		table.Columns[j] = msgcat.Column{Name: name, Type: typ}
		for i, raw := range column {
			table.Rows[i][j] = ConvertCell(raw, typ)
		}
	}

	return table, nil
}

// InferColumnType returns the narrowest type that holds every non-missing value.
// A column with no values at all is ColumnText.
func InferColumnType(values []string) msgcat.ColumnType {
	seen := false
	isInt, isReal := true, true
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		seen = true
		s := strings.TrimSpace(v)
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if !isInt {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isReal = false
				break
			}
		}
	}

	switch {
	case !seen:
		return msgcat.ColumnText
	case isInt:
		return msgcat.ColumnInteger
	case isReal:
		return msgcat.ColumnReal
	default:
		return msgcat.ColumnText
	}
}

// ConvertCell converts raw to the Go value stored for typ.
// It assumes raw is valid for typ, as established by InferColumnType.
func ConvertCell(raw string, typ msgcat.ColumnType) any {
	if IsMissing(raw) {
		return nil
	}
	switch typ {
	case msgcat.ColumnInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return raw
		}
		return n
	case msgcat.ColumnReal:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw
		}
		// NaN spellings outside missingMarkers ("NAN", "Nan") are missing too
		if math.IsNaN(f) {
			return nil
		}
		return f
	default:
		return raw
	}
}

// IsMissing reports whether raw denotes a missing value.
func IsMissing(raw string) bool {
	_, ok := missingMarkers[raw]
	return ok
}

func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		for used[name] {
			counts[h]++
			name = h + "." + strconv.Itoa(counts[h])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
