package sqlstore

import (
	"context"
	"fmt"
)

// Timestamps and dates are stored as Unix seconds so the schema works
// unchanged on sqlite and Postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS truck_type (
		code TEXT PRIMARY KEY,
		waste TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS truck (
		id INTEGER PRIMARY KEY,
		type_code TEXT NOT NULL REFERENCES truck_type(code),
		capacity REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS route (
		id INTEGER PRIMARY KEY,
		waste TEXT NOT NULL,
		length_km REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS facility (
		id INTEGER PRIMARY KEY,
		waste TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employee (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		hire_date INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS driver (
		eid INTEGER NOT NULL REFERENCES employee(id),
		type_code TEXT NOT NULL REFERENCES truck_type(code),
		PRIMARY KEY (eid, type_code)
	)`,
	`CREATE TABLE IF NOT EXISTS technician (
		eid INTEGER NOT NULL REFERENCES employee(id),
		type_code TEXT NOT NULL REFERENCES truck_type(code),
		PRIMARY KEY (eid, type_code)
	)`,
	`CREATE TABLE IF NOT EXISTS trip (
		route_id INTEGER NOT NULL REFERENCES route(id),
		truck_id INTEGER NOT NULL REFERENCES truck(id),
		start_ts INTEGER NOT NULL,
		volume REAL,
		driver_high INTEGER NOT NULL,
		driver_low INTEGER NOT NULL,
		facility_id INTEGER NOT NULL REFERENCES facility(id)
	)`,
	`CREATE INDEX IF NOT EXISTS trip_start_idx ON trip(start_ts)`,
	`CREATE TABLE IF NOT EXISTS maintenance (
		truck_id INTEGER NOT NULL REFERENCES truck(id),
		technician_id INTEGER NOT NULL REFERENCES employee(id),
		date_ts INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS maintenance_date_idx ON maintenance(date_ts)`,
}

// Init creates the schema when missing.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: init schema: %w", err)
		}
	}
	return nil
}
