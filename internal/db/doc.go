// Package db writes msgcat tables to a destination relational store.
//
// A destination string selects the backend:
//
//	postgres://user@host/db, postgresql://...   PostgreSQL via pgx (COPY)
//	sqlite:///relative.db, sqlite:////abs.db    SQLite via sqlx + modernc.org/sqlite
//	sqlite:path.db, path.db, :memory:            SQLite
//
// Every store implements msgcat.Store with drop-and-recreate semantics: an
// existing table of the same name is dropped, never merged.
package db
