// Package maintenance books overdue trucks with qualified technicians.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// serviceIntervalDays is the span after which a truck's last service no
// longer counts as recent.
const serviceIntervalDays = 90

// Planner books maintenance appointments for trucks whose entire service
// history is stale relative to a reference date.
type Planner struct {
	store storage.Store
}

// New returns a planner over the given store.
func New(store storage.Store) *Planner {
	return &Planner{store: store}
}

// Schedule books one appointment per overdue truck, scanning days strictly
// after the reference date and picking the lowest-id qualified technician
// free that day. Trucks with no history at all are not considered overdue.
// A truck with no qualified technician is skipped. Returns the booked
// appointments in ascending truck id order.
func (p *Planner) Schedule(ctx context.Context, date time.Time) ([]model.MaintenanceRecord, error) {
	day := model.Day(date)
	tids, err := p.store.MaintainedTruckIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("schedule maintenance: list trucks: %w", err)
	}

	var booked []model.MaintenanceRecord
	for _, tid := range tids {
		overdue, err := p.overdue(ctx, tid, day)
		if err != nil {
			return booked, err
		}
		if !overdue {
			continue
		}

		truck, err := p.store.TruckByID(ctx, tid)
		if err != nil {
			return booked, fmt.Errorf("schedule maintenance: truck %d: %w", tid, err)
		}
		techs, err := p.store.TechniciansByType(ctx, truck.TypeCode)
		if err != nil {
			return booked, fmt.Errorf("schedule maintenance: technicians for %q: %w", truck.TypeCode, err)
		}
		if len(techs) == 0 {
			continue
		}

		rec, err := p.firstOpening(ctx, tid, day, techs)
		if err != nil {
			return booked, err
		}
		if err := p.store.InsertMaintenance(ctx, rec); err != nil {
			return booked, fmt.Errorf("schedule maintenance: insert truck %d: %w", tid, err)
		}
		booked = append(booked, rec)
	}
	return booked, nil
}

// overdue reports whether every one of the truck's service records is more
// than the service interval old. Future-dated records keep a truck current.
func (p *Planner) overdue(ctx context.Context, tid int, day time.Time) (bool, error) {
	recs, err := p.store.MaintenanceForTruck(ctx, tid)
	if err != nil {
		return false, fmt.Errorf("schedule maintenance: history truck %d: %w", tid, err)
	}
	for _, rec := range recs {
		if model.DaysBetween(rec.Date, day) <= serviceIntervalDays {
			return false, nil
		}
	}
	return true, nil
}

// firstOpening walks forward from the day after the reference date until a
// qualified technician has no booking, preferring the lowest employee id.
func (p *Planner) firstOpening(ctx context.Context, tid int, day time.Time, techs []int) (model.MaintenanceRecord, error) {
	for d := day.AddDate(0, 0, 1); ; d = d.AddDate(0, 0, 1) {
		busy, err := p.store.TechniciansBusyOn(ctx, d)
		if err != nil {
			return model.MaintenanceRecord{}, fmt.Errorf("schedule maintenance: bookings on %s: %w", d.Format(time.DateOnly), err)
		}
		taken := make(map[int]bool, len(busy))
		for _, eid := range busy {
			taken[eid] = true
		}
		for _, eid := range techs {
			if !taken[eid] {
				return model.MaintenanceRecord{TruckID: tid, TechnicianID: eid, Date: d}, nil
			}
		}
	}
}
