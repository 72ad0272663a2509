// Package postgres provides a PostgreSQL implementation of store.BlobStore.
// It handles connection setup through the pgx database/sql driver, schema
// migrations and the mapping of PostgreSQL errors onto store errors.
package postgres
