// Package frame implements the relational operations the pipeline applies to
// msgcat tables: inner join on a key column, column removal, positional
// concatenation and exact-duplicate removal.
//
// Operations never modify their inputs; they return new tables that may share
// cell values (cells are immutable scalars).
package frame
