// Package sqlite provides the SQLite-backed workspace database.
// It uses the pure Go modernc.org/sqlite driver, so no CGO is required.
//
// Schema changes live in the migrations package as numbered .up.sql files
// and are applied in order when the store is opened.
package sqlite
