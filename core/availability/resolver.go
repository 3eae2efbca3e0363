// Package availability computes which trucks and drivers are free for a
// candidate time window. Interval arithmetic happens here, in memory; the
// store only supplies raw rows.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// Resolver answers availability queries against a Store.
type Resolver struct {
	store storage.Store
}

// New returns a Resolver backed by the given store.
func New(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// tripWindows materializes the buffered occupancy window of every trip that
// could conflict with w. Only trips on the window's calendar days can:
// workday trips plus their buffers never cross midnight.
func (r *Resolver) tripWindows(ctx context.Context, w model.Window) ([]model.Trip, []model.Window, error) {
	from := model.Day(w.Start)
	to := model.Day(w.End).Add(24 * time.Hour)
	trips, err := r.store.TripsBetween(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("availability: list trips: %w", err)
	}
	lengths := make(map[int]float64)
	windows := make([]model.Window, len(trips))
	for i, t := range trips {
		length, ok := lengths[t.RouteID]
		if !ok {
			route, err := r.store.RouteByID(ctx, t.RouteID)
			if err != nil {
				return nil, nil, fmt.Errorf("availability: route %d: %w", t.RouteID, err)
			}
			length = route.LengthKM
			lengths[t.RouteID] = length
		}
		windows[i] = model.TripWindow(t.Start, length).Buffered()
	}
	return trips, windows, nil
}

// AvailableTrucks returns the trucks free for the window, ascending by id.
// A truck is unavailable if any of its trips' buffered windows overlap w,
// or if it is booked for maintenance on w's calendar day.
func (r *Resolver) AvailableTrucks(ctx context.Context, w model.Window) ([]model.Truck, error) {
	trucks, err := r.store.ListTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: list trucks: %w", err)
	}
	trips, windows, err := r.tripWindows(ctx, w)
	if err != nil {
		return nil, err
	}
	busy := make(map[int]bool)
	for i, t := range trips {
		if windows[i].Overlaps(w) {
			busy[t.TruckID] = true
		}
	}
	day := model.Day(w.Start)
	free := trucks[:0]
	for _, truck := range trucks {
		if busy[truck.ID] {
			continue
		}
		down, err := r.store.TruckMaintenanceOn(ctx, truck.ID, day)
		if err != nil {
			return nil, fmt.Errorf("availability: maintenance for truck %d: %w", truck.ID, err)
		}
		if !down {
			free = append(free, truck)
		}
	}
	return free, nil
}

// AvailableDrivers returns the drivers free for the window, ordered by hire
// date then employee id. A driver is unavailable if any trip listing them
// has a buffered window overlapping w.
func (r *Resolver) AvailableDrivers(ctx context.Context, w model.Window) ([]model.Driver, error) {
	drivers, err := r.store.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: list drivers: %w", err)
	}
	trips, windows, err := r.tripWindows(ctx, w)
	if err != nil {
		return nil, err
	}
	busy := make(map[int]bool)
	for i, t := range trips {
		if windows[i].Overlaps(w) {
			busy[t.DriverHigh] = true
			busy[t.DriverLow] = true
		}
	}
	free := drivers[:0]
	for _, d := range drivers {
		if !busy[d.Employee.ID] {
			free = append(free, d)
		}
	}
	return free, nil
}

// FullDayFreeDrivers returns the drivers with no trip at all on the given
// calendar day, ordered by hire date then employee id. Batch scheduling
// holds one driver pair for a whole day, so windowed availability is not
// enough there.
func (r *Resolver) FullDayFreeDrivers(ctx context.Context, day time.Time) ([]model.Driver, error) {
	drivers, err := r.store.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: list drivers: %w", err)
	}
	day = model.Day(day)
	trips, err := r.store.TripsBetween(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("availability: list trips: %w", err)
	}
	busy := make(map[int]bool)
	for _, t := range trips {
		busy[t.DriverHigh] = true
		busy[t.DriverLow] = true
	}
	free := drivers[:0]
	for _, d := range drivers {
		if !busy[d.Employee.ID] {
			free = append(free, d)
		}
	}
	return free, nil
}
