// Package memstore is an in-memory storage.Store used for development and
// tests. All queries sort on the fly so ordering matches the contract no
// matter the seeding order.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

// Store holds the whole dataset in memory behind one mutex.
type Store struct {
	mu sync.RWMutex

	routes      map[int]model.Route
	truckTypes  map[string]model.TruckType
	trucks      map[int]model.Truck
	facilities  map[int]model.Facility
	employees   map[int]model.Employee
	driverQuals map[int][]string
	techQuals   map[int][]string
	trips       []model.Trip
	maintenance []model.MaintenanceRecord
}

// New returns an empty store.
func New() *Store {
	return &Store{
		routes:      make(map[int]model.Route),
		truckTypes:  make(map[string]model.TruckType),
		trucks:      make(map[int]model.Truck),
		facilities:  make(map[int]model.Facility),
		employees:   make(map[int]model.Employee),
		driverQuals: make(map[int][]string),
		techQuals:   make(map[int][]string),
	}
}

// Seeding. These replace any existing row with the same key.

func (s *Store) AddRoute(r model.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[r.ID] = r
}

func (s *Store) AddTruckType(tt model.TruckType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.truckTypes[tt.Code] = tt
}

func (s *Store) AddTruck(t model.Truck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trucks[t.ID] = t
}

func (s *Store) AddFacility(f model.Facility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities[f.ID] = f
}

func (s *Store) AddEmployee(e model.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// AddDriverQualification marks the employee as a driver of the truck type.
func (s *Store) AddDriverQualification(eid int, typeCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.driverQuals[eid] = appendUnique(s.driverQuals[eid], typeCode)
}

func (s *Store) AddTrip(t model.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.DriverHigh, t.DriverLow = model.DriverPair(t.DriverHigh, t.DriverLow)
	s.trips = append(s.trips, t)
}

func (s *Store) AddMaintenance(rec model.MaintenanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Date = model.Day(rec.Date)
	s.maintenance = append(s.maintenance, rec)
}

func (s *Store) AddTechnicianQualification(eid int, typeCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.techQuals[eid] = appendUnique(s.techQuals[eid], typeCode)
}

// Reference data.

func (s *Store) RouteByID(_ context.Context, id int) (model.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routes[id]
	if !ok {
		return model.Route{}, storage.ErrNotFound
	}
	return r, nil
}

func (s *Store) RoutesByWaste(_ context.Context, waste model.WasteType) ([]model.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Route
	for _, r := range s.routes {
		if r.Waste == waste {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) TruckByID(_ context.Context, id int) (model.Truck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trucks[id]
	if !ok {
		return model.Truck{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) TruckTypeByCode(_ context.Context, code string) (model.TruckType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tt, ok := s.truckTypes[code]
	if !ok {
		return model.TruckType{}, storage.ErrNotFound
	}
	return tt, nil
}

func (s *Store) ListTrucks(_ context.Context) ([]model.Truck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Truck, 0, len(s.trucks))
	for _, t := range s.trucks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FacilityByID(_ context.Context, id int) (model.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.facilities[id]
	if !ok {
		return model.Facility{}, storage.ErrNotFound
	}
	return f, nil
}

func (s *Store) FacilitiesByWaste(_ context.Context, waste model.WasteType) ([]model.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Facility
	for _, f := range s.facilities {
		if f.Waste == waste {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Employees and qualifications.

func (s *Store) ListDrivers(_ context.Context) ([]model.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Driver, 0, len(s.driverQuals))
	for eid, types := range s.driverQuals {
		emp, ok := s.employees[eid]
		if !ok {
			continue
		}
		codes := make([]string, len(types))
		copy(codes, types)
		sort.Strings(codes)
		out = append(out, model.Driver{Employee: emp, TruckTypes: codes})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Employee, out[j].Employee
		if !a.HireDate.Equal(b.HireDate) {
			return a.HireDate.Before(b.HireDate)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (s *Store) IsDriver(_ context.Context, eid int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.driverQuals[eid]) > 0, nil
}

func (s *Store) EmployeeByName(_ context.Context, name string) (model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.Name == name {
			return e, nil
		}
	}
	return model.Employee{}, storage.ErrNotFound
}

func (s *Store) TechniciansByType(_ context.Context, typeCode string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int
	for eid, types := range s.techQuals {
		for _, c := range types {
			if c == typeCode {
				out = append(out, eid)
				break
			}
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *Store) HasTechnicianQualification(_ context.Context, eid int, typeCode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.techQuals[eid] {
		if c == typeCode {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertTechnician(_ context.Context, eid int, typeCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.techQuals[eid] = appendUnique(s.techQuals[eid], typeCode)
	return nil
}

// Trips.

func (s *Store) ListTrips(_ context.Context) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Trip, len(s.trips))
	copy(out, s.trips)
	sortTrips(out)
	return out, nil
}

func (s *Store) TripsBetween(_ context.Context, from, to time.Time) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Trip
	for _, t := range s.trips {
		if !t.Start.Before(from) && t.Start.Before(to) {
			out = append(out, t)
		}
	}
	sortTrips(out)
	return out, nil
}

func (s *Store) RouteScheduledOn(_ context.Context, rid int, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trips {
		if t.RouteID == rid && model.SameDay(t.Start, day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) TripsForFacilityOn(_ context.Context, fid int, day time.Time) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Trip
	for _, t := range s.trips {
		if t.FacilityID == fid && model.SameDay(t.Start, day) {
			out = append(out, t)
		}
	}
	sortTrips(out)
	return out, nil
}

func (s *Store) InsertTrip(_ context.Context, trip model.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	trip.DriverHigh, trip.DriverLow = model.DriverPair(trip.DriverHigh, trip.DriverLow)
	s.trips = append(s.trips, trip)
	return nil
}

func (s *Store) UpdateTripFacility(_ context.Context, fid int, day time.Time, newFID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := 0
	for i, t := range s.trips {
		if t.FacilityID == fid && model.SameDay(t.Start, day) {
			s.trips[i].FacilityID = newFID
			moved++
		}
	}
	return moved, nil
}

// Maintenance.

func (s *Store) MaintainedTruckIDs(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[int]bool)
	var out []int
	for _, rec := range s.maintenance {
		if !seen[rec.TruckID] {
			seen[rec.TruckID] = true
			out = append(out, rec.TruckID)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *Store) MaintenanceForTruck(_ context.Context, tid int) ([]model.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.MaintenanceRecord
	for _, rec := range s.maintenance {
		if rec.TruckID == tid {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) TruckMaintenanceOn(_ context.Context, tid int, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.maintenance {
		if rec.TruckID == tid && model.SameDay(rec.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) TechniciansBusyOn(_ context.Context, day time.Time) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[int]bool)
	var out []int
	for _, rec := range s.maintenance {
		if model.SameDay(rec.Date, day) && !seen[rec.TechnicianID] {
			seen[rec.TechnicianID] = true
			out = append(out, rec.TechnicianID)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *Store) InsertMaintenance(_ context.Context, rec model.MaintenanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Date = model.Day(rec.Date)
	s.maintenance = append(s.maintenance, rec)
	return nil
}

func sortTrips(trips []model.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].Start.Equal(trips[j].Start) {
			return trips[i].Start.Before(trips[j].Start)
		}
		return trips[i].RouteID < trips[j].RouteID
	})
}

func appendUnique(codes []string, code string) []string {
	for _, c := range codes {
		if c == code {
			return codes
		}
	}
	return append(codes, code)
}
