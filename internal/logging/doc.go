// Package logging provides implementations of the msgcat.Logger interface.
//
// ConsoleLogger writes diagnostic lines to a writer (the command's stderr) so
// that the pipeline's progress lines on stdout stay clean. NullLogger
// discards everything and is used by tests and library callers.
package logging
