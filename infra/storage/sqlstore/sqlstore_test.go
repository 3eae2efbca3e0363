package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "fleet.db"))
	require.NoError(t, err)
	s := New(db, "sqlite")
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	exec := func(query string, args ...any) {
		t.Helper()
		_, err := s.db.ExecContext(ctx, query, args...)
		require.NoError(t, err)
	}
	exec(`INSERT INTO truck_type (code, waste) VALUES ('A', 'compost'), ('B', 'plastic')`)
	exec(`INSERT INTO truck (id, type_code, capacity) VALUES (1, 'A', 10), (2, 'A', 20), (3, 'B', 15)`)
	exec(`INSERT INTO route (id, waste, length_km) VALUES (1, 'compost', 10), (2, 'compost', 2.5), (3, 'plastic', 5)`)
	exec(`INSERT INTO facility (id, waste) VALUES (1, 'compost'), (2, 'compost'), (3, 'plastic')`)
	hire := func(y int, m time.Month, d int) int64 {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	}
	exec(`INSERT INTO employee (id, name, hire_date) VALUES (10, 'Alice Reed', ?), (11, 'Bob Stone', ?), (20, 'Erin Wolf', ?)`,
		hire(2015, 3, 1), hire(2016, 6, 1), hire(2019, 2, 1))
	exec(`INSERT INTO driver (eid, type_code) VALUES (10, 'A'), (11, 'A'), (11, 'B')`)
	exec(`INSERT INTO technician (eid, type_code) VALUES (20, 'A')`)
}

func TestReferenceLookups(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	route, err := s.RouteByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, model.WasteType("compost"), route.Waste)

	_, err = s.RouteByID(ctx, 99)
	require.ErrorIs(t, err, storage.ErrNotFound)

	routes, err := s.RoutesByWaste(ctx, "compost")
	require.NoError(t, err)
	require.Len(t, routes, 2)
	require.Equal(t, 1, routes[0].ID)

	trucks, err := s.ListTrucks(ctx)
	require.NoError(t, err)
	require.Len(t, trucks, 3)

	facilities, err := s.FacilitiesByWaste(ctx, "compost")
	require.NoError(t, err)
	require.Equal(t, 1, facilities[0].ID)
	require.Equal(t, 2, facilities[1].ID)
}

func TestDriversAndTechnicians(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	drivers, err := s.ListDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	require.Equal(t, 10, drivers[0].Employee.ID)
	require.Equal(t, []string{"A"}, drivers[0].TruckTypes)
	require.Equal(t, []string{"A", "B"}, drivers[1].TruckTypes)

	ok, err := s.IsDriver(ctx, 10)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.IsDriver(ctx, 20)
	require.NoError(t, err)
	require.False(t, ok)

	emp, err := s.EmployeeByName(ctx, "Erin Wolf")
	require.NoError(t, err)
	require.Equal(t, 20, emp.ID)

	require.NoError(t, s.InsertTechnician(ctx, 20, "B"))
	techs, err := s.TechniciansByType(ctx, "B")
	require.NoError(t, err)
	require.Equal(t, []int{20}, techs)
}

func TestTripRoundTrip(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertTrip(ctx, model.Trip{
		RouteID: 1, TruckID: 2,
		Start:      day.Add(9 * time.Hour),
		DriverHigh: 10, DriverLow: 11,
		FacilityID: 1,
	}))

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	// The pair is normalized on insert.
	require.Equal(t, 11, trips[0].DriverHigh)
	require.Equal(t, 10, trips[0].DriverLow)
	require.Equal(t, day.Add(9*time.Hour), trips[0].Start)
	require.Nil(t, trips[0].Volume)

	dup, err := s.RouteScheduledOn(ctx, 1, day)
	require.NoError(t, err)
	require.True(t, dup)
	dup, err = s.RouteScheduledOn(ctx, 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, dup)

	between, err := s.TripsBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, between, 1)

	moved, err := s.UpdateTripFacility(ctx, 1, day, 2)
	require.NoError(t, err)
	require.Equal(t, 1, moved)
	atNew, err := s.TripsForFacilityOn(ctx, 2, day)
	require.NoError(t, err)
	require.Len(t, atNew, 1)
}

func TestMaintenanceQueries(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertMaintenance(ctx, model.MaintenanceRecord{TruckID: 2, TechnicianID: 20, Date: day}))
	require.NoError(t, s.InsertMaintenance(ctx, model.MaintenanceRecord{TruckID: 1, TechnicianID: 20, Date: day.AddDate(0, 0, -100)}))

	tids, err := s.MaintainedTruckIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, tids)

	recs, err := s.MaintenanceForTruck(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, day.AddDate(0, 0, -100), recs[0].Date)

	down, err := s.TruckMaintenanceOn(ctx, 2, day)
	require.NoError(t, err)
	require.True(t, down)

	busy, err := s.TechniciansBusyOn(ctx, day)
	require.NoError(t, err)
	require.Equal(t, []int{20}, busy)
	busy, err = s.TechniciansBusyOn(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Empty(t, busy)
}

func TestRebindPostgresPlaceholders(t *testing.T) {
	s := &Store{driver: "pgx"}
	got := s.rebind(`SELECT id FROM route WHERE waste = ? AND id > ?`)
	require.Equal(t, `SELECT id FROM route WHERE waste = $1 AND id > $2`, got)

	lite := &Store{driver: "sqlite"}
	require.Equal(t, `SELECT ?`, lite.rebind(`SELECT ?`))
}
