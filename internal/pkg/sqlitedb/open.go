// Package sqlitedb opens the shared SQLite handle used by the report store
// and the run log.
package sqlitedb

import (
	"database/sql"
	"fmt"

	// Pure-Go driver, no CGO; registers as "sqlite".
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database. It only lives as long as
// the single pooled connection, which Open pins.
const MemoryPath = ":memory:"

// Open opens (or creates) the SQLite database at path with WAL journaling,
// enforced foreign keys and a 5s busy timeout.
//
//	db, err := sqlitedb.Open("./data/pizza.db")
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// One connection: a single writer, and an in-memory database is per
	// connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %q: %w", path, err)
	}
	return db, nil
}
