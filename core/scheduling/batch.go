package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// ScheduleBatch packs as many of the truck's unscheduled routes as fit into
// the working day, reusing one driver pair and one facility for the whole
// batch. Trips are committed as they are decided: the returned count is
// valid even when a later step stops the packing, and committed trips stay.
func (s *TripScheduler) ScheduleBatch(ctx context.Context, tid int, day time.Time) (int, error) {
	truck, err := s.store.TruckByID(ctx, tid)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, reject(RejectInvalidTruck, "truck %d", tid)
	}
	if err != nil {
		return 0, fmt.Errorf("schedule batch: truck %d: %w", tid, err)
	}
	tt, err := s.store.TruckTypeByCode(ctx, truck.TypeCode)
	if err != nil {
		return 0, fmt.Errorf("schedule batch: truck type %q: %w", truck.TypeCode, err)
	}

	day = model.Day(day)
	routes, err := s.unscheduledRoutes(ctx, tt.Waste, day)
	if err != nil {
		return 0, err
	}
	if len(routes) == 0 {
		return 0, nil
	}

	drivers, err := s.resolver.FullDayFreeDrivers(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("schedule batch: %w", err)
	}
	first, second, ok := driverPair(drivers, truck.TypeCode)
	if !ok {
		return 0, reject(RejectNoDriver, "no full-day pair for type %s", truck.TypeCode)
	}
	facility, err := s.bestFacility(ctx, tt.Waste, -1)
	if err != nil {
		return 0, err
	}

	high, low := model.DriverPair(first.Employee.ID, second.Employee.ID)
	start := day.Add(model.WorkdayStart)
	dayClose := day.Add(model.WorkdayEnd)
	scheduled := 0
	for _, route := range routes {
		end := start.Add(model.TripDuration(route.LengthKM))
		// The last trip must end strictly before close of day; the first
		// route that does not fit stops the whole batch.
		if !end.Before(dayClose) {
			break
		}
		trip := model.Trip{
			RouteID:    route.ID,
			TruckID:    tid,
			Start:      start,
			DriverHigh: high,
			DriverLow:  low,
			FacilityID: facility.ID,
		}
		if err := s.store.InsertTrip(ctx, trip); err != nil {
			return scheduled, fmt.Errorf("schedule batch: insert route %d: %w", route.ID, err)
		}
		scheduled++
		start = end.Add(model.TripBuffer)
	}
	return scheduled, nil
}

// unscheduledRoutes lists routes of the given waste type with no trip on
// the day yet, ascending by route id.
func (s *TripScheduler) unscheduledRoutes(ctx context.Context, waste model.WasteType, day time.Time) ([]model.Route, error) {
	routes, err := s.store.RoutesByWaste(ctx, waste)
	if err != nil {
		return nil, fmt.Errorf("schedule batch: routes for %q: %w", waste, err)
	}
	open := routes[:0]
	for _, route := range routes {
		taken, err := s.store.RouteScheduledOn(ctx, route.ID, day)
		if err != nil {
			return nil, fmt.Errorf("schedule batch: duplicate check route %d: %w", route.ID, err)
		}
		if !taken {
			open = append(open, route)
		}
	}
	return open, nil
}
