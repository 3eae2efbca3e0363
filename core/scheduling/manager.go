package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/wrangler/core/audit"
	"github.com/fleetops/wrangler/core/events"
	"github.com/fleetops/wrangler/core/logger"
	"github.com/fleetops/wrangler/core/maintenance"
	"github.com/fleetops/wrangler/core/metrics"
	"github.com/fleetops/wrangler/core/roster"
	"github.com/fleetops/wrangler/core/storage"
	"github.com/fleetops/wrangler/core/workmate"
	"github.com/fleetops/wrangler/internal/eventbus"
)

// Manager is the public face of the scheduler. Its methods never fail:
// every rejection and every storage fault is logged, counted and audited,
// then reported as the documented false, zero or empty result.
type Manager struct {
	trips       *TripScheduler
	maintenance *maintenance.Planner
	workmates   *workmate.Resolver
	importer    *roster.Importer
	log         logger.Logger
	sink        metrics.Sink
	bus         eventbus.EventBus
	audit       audit.Store
}

// ManagerConfig carries the Manager's collaborators. Store is required;
// the observability collaborators may be nil and default to no-ops.
type ManagerConfig struct {
	Store   storage.Store
	Logger  logger.Logger
	Metrics metrics.Sink
	Bus     eventbus.EventBus
	Audit   audit.Store
}

// NewManager wires a Manager from its collaborators.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		trips:       NewTripScheduler(cfg.Store),
		maintenance: maintenance.New(cfg.Store),
		workmates:   workmate.New(cfg.Store),
		importer:    roster.NewImporter(cfg.Store),
		log:         cfg.Logger,
		sink:        cfg.Metrics,
		bus:         cfg.Bus,
		audit:       cfg.Audit,
	}
	if m.log == nil {
		m.log = logger.Nop{}
	}
	if m.sink == nil {
		m.sink = metrics.NopSink{}
	}
	return m
}

// ScheduleTrip schedules the route at the given start time. True means a
// trip was committed.
func (m *Manager) ScheduleTrip(ctx context.Context, rid int, start time.Time) bool {
	const op = "schedule_trip"
	trip, err := m.trips.ScheduleTrip(ctx, rid, start)
	if err != nil {
		reason := KindOf(err).String()
		m.log.Warnf("trip for route %d at %s rejected: %v", rid, start.Format(time.RFC3339), err)
		m.record(ctx, op, 0, reason, audit.Record{RouteID: rid, Day: dayOf(start)})
		m.publish(events.TripRejected{RouteID: rid, Start: start, Reason: reason})
		return false
	}
	m.log.Infof("route %d scheduled on truck %d to facility %d at %s",
		rid, trip.TruckID, trip.FacilityID, start.Format(time.RFC3339))
	m.record(ctx, op, 1, "", audit.Record{
		RouteID: rid, TruckID: trip.TruckID, FacilityID: trip.FacilityID, Day: dayOf(start),
	})
	m.publish(events.TripScheduled{Trip: trip})
	return true
}

// ScheduleTrips packs the truck's unscheduled routes into the given day and
// returns the number of trips committed.
func (m *Manager) ScheduleTrips(ctx context.Context, tid int, date time.Time) int {
	const op = "schedule_trips"
	count, err := m.trips.ScheduleBatch(ctx, tid, date)
	if err != nil {
		m.log.Warnf("batch for truck %d on %s stopped after %d trips: %v", tid, dayOf(date), count, err)
		m.record(ctx, op, count, KindOf(err).String(), audit.Record{TruckID: tid, Day: dayOf(date)})
	} else {
		m.log.Infof("batch for truck %d on %s committed %d trips", tid, dayOf(date), count)
		m.record(ctx, op, count, "", audit.Record{TruckID: tid, Day: dayOf(date)})
	}
	m.publish(events.BatchScheduled{TruckID: tid, Day: date, Count: count})
	return count
}

// ScheduleMaintenance books appointments for every overdue truck and
// returns how many were booked.
func (m *Manager) ScheduleMaintenance(ctx context.Context, date time.Time) int {
	const op = "schedule_maintenance"
	booked, err := m.maintenance.Schedule(ctx, date)
	if err != nil {
		m.log.Errorf("maintenance sweep for %s stopped after %d bookings: %v", dayOf(date), len(booked), err)
		m.record(ctx, op, len(booked), KindOf(err).String(), audit.Record{Day: dayOf(date)})
	} else {
		m.log.Infof("maintenance sweep for %s booked %d appointments", dayOf(date), len(booked))
		m.record(ctx, op, len(booked), "", audit.Record{Day: dayOf(date)})
	}
	for _, rec := range booked {
		m.publish(events.MaintenanceScheduled{Record: rec})
	}
	return len(booked)
}

// RerouteWaste moves the day's trips away from the facility and returns
// how many moved.
func (m *Manager) RerouteWaste(ctx context.Context, fid int, date time.Time) int {
	const op = "reroute_waste"
	moved, alternate, err := m.trips.Reroute(ctx, fid, date)
	if err != nil {
		m.log.Warnf("reroute from facility %d on %s rejected: %v", fid, dayOf(date), err)
		m.record(ctx, op, 0, KindOf(err).String(), audit.Record{FacilityID: fid, Day: dayOf(date)})
		return 0
	}
	m.log.Infof("rerouted %d trips from facility %d to %d on %s", moved, fid, alternate, dayOf(date))
	m.record(ctx, op, moved, "", audit.Record{FacilityID: fid, Day: dayOf(date)})
	if moved > 0 {
		m.publish(events.WasteRerouted{FacilityID: fid, AlternateID: alternate, Day: date, Count: moved})
	}
	return moved
}

// WorkmateSphere returns every driver connected to eid through chains of
// shared trips, ascending. Unknown employees and non-drivers get an empty
// slice, never nil.
func (m *Manager) WorkmateSphere(ctx context.Context, eid int) []int {
	const op = "workmate_sphere"
	sphere, err := m.workmates.Sphere(ctx, eid)
	if err != nil {
		m.log.Errorf("workmate sphere for %d failed: %v", eid, err)
		m.record(ctx, op, 0, KindOf(err).String(), audit.Record{EmployeeID: eid})
		return []int{}
	}
	m.record(ctx, op, len(sphere), "", audit.Record{EmployeeID: eid})
	return sphere
}

// UpdateTechnicians applies a qualification roster and returns how many
// records were accepted.
func (m *Manager) UpdateTechnicians(ctx context.Context, recs []roster.Qualification) int {
	const op = "update_technicians"
	applied, err := m.importer.Apply(ctx, recs)
	if err != nil {
		m.log.Errorf("roster import stopped after %d of %d records: %v", applied, len(recs), err)
		m.record(ctx, op, applied, KindOf(err).String(), audit.Record{})
	} else {
		m.log.Infof("roster import applied %d of %d records", applied, len(recs))
		m.record(ctx, op, applied, "", audit.Record{})
	}
	return applied
}

// record fans one decision out to the metrics sink and the audit store.
// Observability failures are logged and swallowed, they never change the
// scheduling result.
func (m *Manager) record(ctx context.Context, op string, accepted int, rejected string, rec audit.Record) {
	now := time.Now().UTC()
	out := metrics.Outcome{Operation: op, Accepted: accepted, Rejected: rejected, At: now}
	if err := m.sink.RecordOutcome([]metrics.Outcome{out}); err != nil {
		m.log.Warnf("metrics sink: %v", err)
	}
	if m.audit == nil {
		return
	}
	rec.ID = uuid.NewString()
	rec.Timestamp = now
	rec.Operation = op
	rec.Accepted = accepted
	rec.Rejected = rejected
	if err := m.audit.Append(ctx, rec); err != nil {
		m.log.Warnf("audit store: %v", err)
	}
}

func (m *Manager) publish(e events.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func dayOf(t time.Time) string {
	return t.Format(time.DateOnly)
}
