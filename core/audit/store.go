// Package audit persists a record of every scheduling decision, accepted
// or rejected, for later inspection.
package audit

import (
	"context"
	"time"
)

// Record captures one scheduling decision.
type Record struct {
	// ID is a generated unique identifier for the record.
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	// Operation names the public API call, e.g. "schedule_maintenance".
	Operation  string `json:"operation"`
	RouteID    int    `json:"route_id,omitempty"`
	TruckID    int    `json:"truck_id,omitempty"`
	FacilityID int    `json:"facility_id,omitempty"`
	EmployeeID int    `json:"employee_id,omitempty"`
	// Day is the calendar date the call operated on, YYYY-MM-DD.
	Day string `json:"day,omitempty"`
	// Accepted counts committed units; Rejected names the rejection kind
	// when the call committed nothing.
	Accepted int    `json:"accepted"`
	Rejected string `json:"rejected,omitempty"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start     time.Time
	End       time.Time
	Operation string
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Operation != "" && r.Operation != q.Operation {
		return false
	}
	return true
}
