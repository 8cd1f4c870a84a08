// Package sqlite wraps the pure Go SQLite driver (modernc.org/sqlite)
// behind a small helper API so callers never hardcode the driver name.
//
// Use Open() instead of sql.Open() to ensure the registered driver is used.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// DriverName returns the SQL driver name to use.
func DriverName() string {
	return driverName
}

// Open opens a SQLite database.
// This is the preferred way to open SQLite databases.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens a SQLite database in read-only mode. The driver
// only honors mode=ro on URI-form DSNs, so the path gets a file: prefix.
func OpenReadOnly(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?mode=ro"
	return Open(dsn)
}

// MustOpen opens a SQLite database and panics on error.
// Use Open instead if you need to handle errors gracefully.
// This is intended for use in tests or initialization code where
// database access failure is unrecoverable.
func MustOpen(dataSourceName string) *sql.DB {
	db, err := Open(dataSourceName)
	if err != nil {
		panic(fmt.Sprintf("sqlite: failed to open %s: %v", dataSourceName, err))
	}
	return db
}
