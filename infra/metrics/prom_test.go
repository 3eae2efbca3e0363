package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/fleetops/wrangler/core/metrics"
)

func TestPromSinkRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	err = sink.RecordOutcome([]coremetrics.Outcome{
		{Operation: "schedule_trip", Accepted: 1, At: time.Now()},
		{Operation: "schedule_trip", Rejected: "no_truck", At: time.Now()},
		{Operation: "schedule_trips", Accepted: 3, At: time.Now()},
	})
	require.NoError(t, err)

	ps := sink.(*PromSink)
	require.Equal(t, 1.0, testutil.ToFloat64(ps.outcomes.WithLabelValues("schedule_trip", "accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(ps.outcomes.WithLabelValues("schedule_trip", "no_truck")))
	require.Equal(t, 3.0, testutil.ToFloat64(ps.accepted.WithLabelValues("schedule_trips")))
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordOutcome([]coremetrics.Outcome{{Operation: "reroute_waste", Accepted: 2}}))
	require.NoError(t, second.RecordOutcome([]coremetrics.Outcome{{Operation: "reroute_waste", Accepted: 1}}))

	ps := second.(*PromSink)
	require.Equal(t, 3.0, testutil.ToFloat64(ps.accepted.WithLabelValues("reroute_waste")))
}

func TestMultiSinkFansOut(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})

	require.NoError(t, multi.RecordOutcome([]coremetrics.Outcome{{Operation: "schedule_trip", Accepted: 1}}))
	ps := prom.(*PromSink)
	require.Equal(t, 1.0, testutil.ToFloat64(ps.accepted.WithLabelValues("schedule_trip")))
}
