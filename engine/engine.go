package engine

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver and
// registers the vector SQL functions first.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:". An in-memory database is private to one
// connection, so the pool is limited to a single connection for that DSN.
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterVectorFunctions(); err != nil {
		return nil, fmt.Errorf("engine: registering functions: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
