package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/infra/storage/memstore"
)

func seed() *memstore.Store {
	s := memstore.New()
	s.AddTruckType(model.TruckType{Code: "A", Waste: "compost"})
	s.AddTruck(model.Truck{ID: 1, TypeCode: "A", Capacity: 10})
	s.AddTruck(model.Truck{ID: 2, TypeCode: "A", Capacity: 20})
	s.AddRoute(model.Route{ID: 1, Waste: "compost", LengthKM: 10})
	s.AddFacility(model.Facility{ID: 1, Waste: "compost"})
	s.AddEmployee(model.Employee{ID: 10, Name: "Alice Reed", HireDate: time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)})
	s.AddEmployee(model.Employee{ID: 11, Name: "Bob Stone", HireDate: time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)})
	s.AddDriverQualification(10, "A")
	s.AddDriverQualification(11, "A")
	return s
}

func window(h, m, endH, endM int) model.Window {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	return model.Window{
		Start: day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute),
		End:   day.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute),
	}
}

func TestAvailableTrucksBufferedOverlap(t *testing.T) {
	store := seed()
	// Truck 1 occupied 9:00-11:00, buffered 8:30-11:30.
	store.AddTrip(model.Trip{RouteID: 1, TruckID: 1, Start: window(9, 0, 11, 0).Start, DriverHigh: 11, DriverLow: 10, FacilityID: 1})
	r := New(store)

	free, err := r.AvailableTrucks(context.Background(), window(11, 0, 11, 30))
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.Equal(t, 2, free[0].ID)

	// Touching the buffer boundary does not conflict.
	free, err = r.AvailableTrucks(context.Background(), window(11, 30, 12, 0))
	require.NoError(t, err)
	require.Len(t, free, 2)
}

func TestAvailableTrucksMaintenanceDay(t *testing.T) {
	store := seed()
	store.AddMaintenance(model.MaintenanceRecord{TruckID: 2, TechnicianID: 20, Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)})
	r := New(store)

	free, err := r.AvailableTrucks(context.Background(), window(9, 0, 10, 0))
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.Equal(t, 1, free[0].ID)

	// The truck is back the next day.
	next := window(9, 0, 10, 0)
	next.Start = next.Start.AddDate(0, 0, 1)
	next.End = next.End.AddDate(0, 0, 1)
	free, err = r.AvailableTrucks(context.Background(), next)
	require.NoError(t, err)
	require.Len(t, free, 2)
}

func TestAvailableDriversOrderAndBusy(t *testing.T) {
	store := seed()
	store.AddTrip(model.Trip{RouteID: 1, TruckID: 1, Start: window(9, 0, 11, 0).Start, DriverHigh: 99, DriverLow: 10, FacilityID: 1})
	r := New(store)

	free, err := r.AvailableDrivers(context.Background(), window(10, 0, 10, 30))
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.Equal(t, 11, free[0].Employee.ID)

	free, err = r.AvailableDrivers(context.Background(), window(12, 0, 12, 30))
	require.NoError(t, err)
	require.Len(t, free, 2)
	// Seniority order: earliest hire first.
	require.Equal(t, 10, free[0].Employee.ID)
	require.Equal(t, 11, free[1].Employee.ID)
}

func TestFullDayFreeDrivers(t *testing.T) {
	store := seed()
	// Bob rides late in the day; he is windowed-free in the morning but not
	// free for a whole-day hold.
	store.AddTrip(model.Trip{RouteID: 1, TruckID: 1, Start: window(14, 0, 16, 0).Start, DriverHigh: 99, DriverLow: 11, FacilityID: 1})
	r := New(store)

	free, err := r.FullDayFreeDrivers(context.Background(), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.Equal(t, 10, free[0].Employee.ID)
}
