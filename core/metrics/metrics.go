package metrics

import "time"

// Outcome records the result of one scheduling operation for observability
// purposes.
type Outcome struct {
	// Operation names the public API call, e.g. "schedule_trip".
	Operation string
	// Accepted counts the units committed by the call: trips inserted,
	// maintenance slots booked, trips rerouted, qualification records
	// applied.
	Accepted int
	// Rejected carries the rejection kind when the call committed nothing,
	// empty otherwise.
	Rejected string
	At       time.Time
}

// Sink records scheduling outcomes.
type Sink interface {
	RecordOutcome(outcomes []Outcome) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordOutcome([]Outcome) error { return nil }
