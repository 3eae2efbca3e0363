package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// Reroute moves all of the day's trips away from the facility to the
// lowest-id alternate accepting the same waste type. All matching trips
// move together in one mutation; the alternate's id and the number of
// trips moved are returned. With no trips to move the call is a no-op
// returning zero.
func (s *TripScheduler) Reroute(ctx context.Context, fid int, day time.Time) (int, int, error) {
	day = model.Day(day)
	trips, err := s.store.TripsForFacilityOn(ctx, fid, day)
	if err != nil {
		return 0, 0, fmt.Errorf("reroute: trips for facility %d: %w", fid, err)
	}
	if len(trips) == 0 {
		return 0, 0, nil
	}

	facility, err := s.store.FacilityByID(ctx, fid)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, 0, reject(RejectNoFacility, "facility %d", fid)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reroute: facility %d: %w", fid, err)
	}
	alternate, err := s.bestFacility(ctx, facility.Waste, fid)
	if err != nil {
		return 0, 0, err
	}

	moved, err := s.store.UpdateTripFacility(ctx, fid, day, alternate.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("reroute: update: %w", err)
	}
	return moved, alternate.ID, nil
}
