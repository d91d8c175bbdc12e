// Package checksum provides content hashing for rows and tables.
//
// Two uses drive the package:
//
//   - Row keys: DropDuplicates compares rows by the SHA-256 of a canonical,
//     type-tagged encoding of their cells, so 1 (integer) and "1" (text) differ
//     while equal cells in equal positions always collide.
//   - Table fingerprints: a hash over the column schema and every row in order,
//     used to confirm that re-running the pipeline reproduces the same table.
//
// # Example Usage
//
//	calculator := checksum.New()
//	key := calculator.CalculateRow(row)
//	fingerprint := calculator.CalculateTable(table)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
