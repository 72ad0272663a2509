// Package sqlite provides a BlobStore backed by a SQLite database file using
// the pure-Go modernc.org/sqlite driver.
package sqlite
