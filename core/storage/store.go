// Package storage defines the collaborator contract the scheduler runs
// against. Any backend works as long as it returns rows in the documented
// order: selection tie-breaks depend on it.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fleetops/wrangler/core/model"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("storage: not found")

// Store is the persistence collaborator. Reference data (routes, trucks,
// employees, qualifications, facilities) is read-only; the scheduler writes
// only trips, maintenance records and technician qualifications.
type Store interface {
	// Reference data. List methods order ascending by id unless stated
	// otherwise.
	RouteByID(ctx context.Context, id int) (model.Route, error)
	RoutesByWaste(ctx context.Context, waste model.WasteType) ([]model.Route, error)
	TruckByID(ctx context.Context, id int) (model.Truck, error)
	TruckTypeByCode(ctx context.Context, code string) (model.TruckType, error)
	ListTrucks(ctx context.Context) ([]model.Truck, error)
	FacilityByID(ctx context.Context, id int) (model.Facility, error)
	FacilitiesByWaste(ctx context.Context, waste model.WasteType) ([]model.Facility, error)

	// ListDrivers returns every employee holding at least one driver
	// qualification, ordered by hire date then employee id.
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	IsDriver(ctx context.Context, eid int) (bool, error)
	EmployeeByName(ctx context.Context, name string) (model.Employee, error)

	// Technician qualifications. TechniciansByType orders by employee id.
	TechniciansByType(ctx context.Context, typeCode string) ([]int, error)
	HasTechnicianQualification(ctx context.Context, eid int, typeCode string) (bool, error)
	InsertTechnician(ctx context.Context, eid int, typeCode string) error

	// Trips. TripsBetween returns trips starting in [from, to) ordered by
	// start time then route id; ListTrips returns all trips in the same
	// order.
	ListTrips(ctx context.Context) ([]model.Trip, error)
	TripsBetween(ctx context.Context, from, to time.Time) ([]model.Trip, error)
	RouteScheduledOn(ctx context.Context, rid int, day time.Time) (bool, error)
	TripsForFacilityOn(ctx context.Context, fid int, day time.Time) ([]model.Trip, error)
	InsertTrip(ctx context.Context, trip model.Trip) error
	// UpdateTripFacility moves every trip bound for fid on the given day to
	// newFID in one batched mutation and returns the number moved.
	UpdateTripFacility(ctx context.Context, fid int, day time.Time, newFID int) (int, error)

	// Maintenance. MaintainedTruckIDs lists trucks with at least one
	// record, ascending; MaintenanceForTruck orders by date.
	MaintainedTruckIDs(ctx context.Context) ([]int, error)
	MaintenanceForTruck(ctx context.Context, tid int) ([]model.MaintenanceRecord, error)
	TruckMaintenanceOn(ctx context.Context, tid int, day time.Time) (bool, error)
	// TechniciansBusyOn returns the ids of technicians already booked on
	// the given day, ascending.
	TechniciansBusyOn(ctx context.Context, day time.Time) ([]int, error)
	InsertMaintenance(ctx context.Context, rec model.MaintenanceRecord) error
}
