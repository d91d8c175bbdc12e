// Package filesystem provides a filesystem abstraction for reading pipeline inputs.
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
//
// Both report missing files with errors that satisfy errors.Is(err, fs.ErrNotExist).
package filesystem
