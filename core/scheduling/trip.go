package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/availability"
	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// TripScheduler assigns trucks, driver pairs and facilities to collection
// routes. Every method validates fully before writing, so a rejection
// leaves the store untouched.
type TripScheduler struct {
	store    storage.Store
	resolver *availability.Resolver
}

// NewTripScheduler returns a scheduler over the given store.
func NewTripScheduler(store storage.Store) *TripScheduler {
	return &TripScheduler{store: store, resolver: availability.New(store)}
}

// ScheduleTrip schedules the route at the given start time, selecting the
// best available truck, driver pair and facility. On success the committed
// trip is returned; otherwise a Rejection (or storage error) explains why
// and nothing is written.
func (s *TripScheduler) ScheduleTrip(ctx context.Context, rid int, start time.Time) (model.Trip, error) {
	route, err := s.store.RouteByID(ctx, rid)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Trip{}, reject(RejectInvalidRoute, "route %d", rid)
	}
	if err != nil {
		return model.Trip{}, fmt.Errorf("schedule trip: route %d: %w", rid, err)
	}

	w := model.TripWindow(start, route.LengthKM)
	day := model.Day(start)
	dayOpen := day.Add(model.WorkdayStart)
	dayClose := day.Add(model.WorkdayEnd)
	if start.Before(dayOpen) || start.After(dayClose) || w.End.After(dayClose) {
		return model.Trip{}, reject(RejectWorkingHours, "window %s-%s outside %s-%s",
			w.Start.Format("15:04"), w.End.Format("15:04"), "08:00", "16:00")
	}

	dup, err := s.store.RouteScheduledOn(ctx, rid, day)
	if err != nil {
		return model.Trip{}, fmt.Errorf("schedule trip: duplicate check: %w", err)
	}
	if dup {
		return model.Trip{}, reject(RejectDuplicateRoute, "route %d already scheduled on %s", rid, day.Format(time.DateOnly))
	}

	facility, err := s.bestFacility(ctx, route.Waste, -1)
	if err != nil {
		return model.Trip{}, err
	}

	truck, err := s.bestTruck(ctx, w, route.Waste)
	if err != nil {
		return model.Trip{}, err
	}

	drivers, err := s.resolver.AvailableDrivers(ctx, w)
	if err != nil {
		return model.Trip{}, fmt.Errorf("schedule trip: %w", err)
	}
	first, second, ok := driverPair(drivers, truck.TypeCode)
	if !ok {
		return model.Trip{}, reject(RejectNoDriver, "no qualified pair for type %s", truck.TypeCode)
	}

	high, low := model.DriverPair(first.Employee.ID, second.Employee.ID)
	trip := model.Trip{
		RouteID:    rid,
		TruckID:    truck.ID,
		Start:      start,
		DriverHigh: high,
		DriverLow:  low,
		FacilityID: facility.ID,
	}
	if err := s.store.InsertTrip(ctx, trip); err != nil {
		return model.Trip{}, fmt.Errorf("schedule trip: insert: %w", err)
	}
	return trip, nil
}

// bestFacility returns the lowest-id facility accepting the waste type,
// excluding the given facility id (pass a negative id to exclude nothing).
func (s *TripScheduler) bestFacility(ctx context.Context, waste model.WasteType, exclude int) (model.Facility, error) {
	facilities, err := s.store.FacilitiesByWaste(ctx, waste)
	if err != nil {
		return model.Facility{}, fmt.Errorf("facilities for %q: %w", waste, err)
	}
	for _, f := range facilities {
		if f.ID != exclude {
			return f, nil
		}
	}
	return model.Facility{}, reject(RejectNoFacility, "no facility accepts %q", waste)
}

// bestTruck picks the available truck carrying the route's waste type with
// the largest capacity, breaking ties by the lower id.
func (s *TripScheduler) bestTruck(ctx context.Context, w model.Window, waste model.WasteType) (model.Truck, error) {
	trucks, err := s.resolver.AvailableTrucks(ctx, w)
	if err != nil {
		return model.Truck{}, fmt.Errorf("schedule trip: %w", err)
	}
	wastes := make(map[string]model.WasteType)
	var best model.Truck
	found := false
	for _, t := range trucks {
		carried, ok := wastes[t.TypeCode]
		if !ok {
			tt, err := s.store.TruckTypeByCode(ctx, t.TypeCode)
			if err != nil {
				return model.Truck{}, fmt.Errorf("truck type %q: %w", t.TypeCode, err)
			}
			carried = tt.Waste
			wastes[t.TypeCode] = carried
		}
		if carried != waste {
			continue
		}
		// Candidates arrive in ascending id order, so a strict capacity
		// comparison keeps the lower id on ties.
		if !found || t.Capacity > best.Capacity {
			best = t
			found = true
		}
	}
	if !found {
		return model.Truck{}, reject(RejectNoTruck, "no available truck carries %q", waste)
	}
	return best, nil
}
