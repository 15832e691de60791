// Package db provides the database layer for the spacex client.
// It persists the fetch history (one row per HTTP attempt) and log entries
// in a SQLite database.
//
// This package is responsible for:
//   - Establishing the database connection and applying migrations (`db.go`).
//   - Defining database-specific structs that map to the SQL tables.
//   - Implementing the repository interfaces from the `domain` package
//     (`FetchRecordRepository`, `LogRepository`).
//   - Converting between domain structs and database structs, including the
//     use of `sql.Null*` types for nullable columns (`types.go`).
//
// Decoded API payloads are never stored; the client keeps no offline cache.
package db
