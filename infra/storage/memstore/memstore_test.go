package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

func TestLookupsReturnErrNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.RouteByID(ctx, 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.TruckByID(ctx, 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.EmployeeByName(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.AddTruck(model.Truck{ID: 3, TypeCode: "A"})
	s.AddTruck(model.Truck{ID: 1, TypeCode: "A"})
	s.AddTruck(model.Truck{ID: 2, TypeCode: "A"})

	trucks, err := s.ListTrucks(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, trucks[0].ID)
	require.Equal(t, 2, trucks[1].ID)
	require.Equal(t, 3, trucks[2].ID)
}

func TestListDriversSeniorityOrder(t *testing.T) {
	s := New()
	s.AddEmployee(model.Employee{ID: 2, Name: "Bob Stone", HireDate: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)})
	s.AddEmployee(model.Employee{ID: 1, Name: "Alice Reed", HireDate: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)})
	s.AddEmployee(model.Employee{ID: 3, Name: "Carol Diaz", HireDate: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)})
	s.AddDriverQualification(1, "A")
	s.AddDriverQualification(2, "A")
	s.AddDriverQualification(3, "A")

	drivers, err := s.ListDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 3)
	// Earliest hire first, then employee id on equal dates.
	require.Equal(t, 2, drivers[0].Employee.ID)
	require.Equal(t, 1, drivers[1].Employee.ID)
	require.Equal(t, 3, drivers[2].Employee.ID)
}

func TestInsertTripNormalizesDriverPair(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.InsertTrip(ctx, model.Trip{
		RouteID: 1, TruckID: 1,
		Start:      time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		DriverHigh: 3, DriverLow: 7,
		FacilityID: 1,
	}))

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, trips[0].DriverHigh)
	require.Equal(t, 3, trips[0].DriverLow)
}

func TestTripsBetweenHalfOpen(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	s.AddTrip(model.Trip{RouteID: 1, Start: day.Add(8 * time.Hour)})
	s.AddTrip(model.Trip{RouteID: 2, Start: day.Add(24 * time.Hour)})

	trips, err := s.TripsBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trips, 1)
	require.Equal(t, 1, trips[0].RouteID)
}

func TestUpdateTripFacilityCountsDayOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	s.AddTrip(model.Trip{RouteID: 1, Start: day.Add(9 * time.Hour), FacilityID: 1})
	s.AddTrip(model.Trip{RouteID: 2, Start: day.Add(13 * time.Hour), FacilityID: 1})
	s.AddTrip(model.Trip{RouteID: 3, Start: day.AddDate(0, 0, 1).Add(9 * time.Hour), FacilityID: 1})

	moved, err := s.UpdateTripFacility(ctx, 1, day, 2)
	require.NoError(t, err)
	require.Equal(t, 2, moved)

	left, err := s.TripsForFacilityOn(ctx, 1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, left, 1)
}

func TestTechnicianQualifications(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.InsertTechnician(ctx, 5, "A"))
	require.NoError(t, s.InsertTechnician(ctx, 3, "A"))

	techs, err := s.TechniciansByType(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, []int{3, 5}, techs)

	ok, err := s.HasTechnicianQualification(ctx, 5, "A")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.HasTechnicianQualification(ctx, 5, "B")
	require.NoError(t, err)
	require.False(t, ok)
}
