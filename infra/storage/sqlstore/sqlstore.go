// Package sqlstore implements the storage contract on database/sql. It
// runs against embedded sqlite for single-node deployments and Postgres
// for the shared fleet database; queries are written once with ? markers
// and rebound per driver.
package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store is a storage.Store backed by a SQL database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects using the given driver name ("sqlite" or "pgx") and DSN
// and verifies the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", driver, err)
	}
	return db, nil
}

// New wraps an open database handle. The driver name selects the
// placeholder dialect.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to the $n form Postgres expects. Sqlite
// takes the query as written.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" && s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
