package metrics

import (
	coremetrics "github.com/fleetops/wrangler/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduling outcomes in Prometheus metrics.
type PromSink struct {
	outcomes *prometheus.CounterVec
	accepted *prometheus.CounterVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_outcomes_total",
		Help: "Total number of scheduling calls by operation and result",
	}, []string{"operation", "result"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_accepted_total",
		Help: "Total units committed by scheduling calls",
	}, []string{"operation"})

	if err := reg.Register(outcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(accepted); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			accepted = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{outcomes: outcomes, accepted: accepted}, nil
}

// RecordOutcome increments the counters for each outcome.
func (s *PromSink) RecordOutcome(outcomes []coremetrics.Outcome) error {
	for _, o := range outcomes {
		result := "accepted"
		if o.Rejected != "" {
			result = o.Rejected
		}
		s.outcomes.WithLabelValues(o.Operation, result).Inc()
		if o.Accepted > 0 {
			s.accepted.WithLabelValues(o.Operation).Add(float64(o.Accepted))
		}
	}
	return nil
}
