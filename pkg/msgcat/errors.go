package msgcat

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := pipeline.Run(ctx, config)
//	if errors.Is(err, msgcat.ErrMalformedCategory) {
//	    // Handle a bad category string
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates an input file does not exist or cannot be opened.
	ErrInputNotFound = errors.New("input not found")

	// ErrMalformedInput indicates an input file could not be parsed as CSV.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingColumn indicates a required column is absent from a table.
	ErrMissingColumn = errors.New("missing column")

	// ErrMalformedCategory indicates an encoded category string could not be decoded.
	ErrMalformedCategory = errors.New("malformed category string")

	// ErrNoRows indicates there is no first row to infer the category schema from.
	ErrNoRows = errors.New("no rows")

	// ErrDuplicateColumn indicates two output columns would share a name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrStoreFailed indicates the destination store could not be opened or written.
	ErrStoreFailed = errors.New("store failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound), errors.Is(err, ErrMalformedInput):
		return ExitInputError
	case errors.Is(err, ErrMissingColumn):
		return ExitInputError
	case errors.Is(err, ErrMalformedCategory), errors.Is(err, ErrNoRows), errors.Is(err, ErrDuplicateColumn):
		return ExitTransformError
	case errors.Is(err, ErrStoreFailed):
		return ExitStoreError
	}

	// cobra reports flag misuse as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "flag needs an argument") ||
		strings.HasPrefix(errStr, "missing required argument") ||
		strings.Contains(errStr, "accepts ") && strings.Contains(errStr, "arg(s)") {
		return ExitUsageError
	}

	return ExitGeneralError
}
