package metrics

import coremetrics "github.com/fleetops/wrangler/core/metrics"

// MultiSink fans outcomes out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordOutcome forwards the outcomes to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordOutcome(outcomes []coremetrics.Outcome) error {
	for _, s := range m.Sinks {
		if err := s.RecordOutcome(outcomes); err != nil {
			return err
		}
	}
	return nil
}
