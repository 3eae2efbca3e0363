package scheduling

import (
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/infra/storage/memstore"
)

// newFleetStore seeds a small fleet shared by the scheduling tests. Truck
// type A hauls compost, type B plastic. Trucks 2 and 3 tie on capacity so
// tie-break behavior is observable.
func newFleetStore() *memstore.Store {
	s := memstore.New()
	s.AddTruckType(model.TruckType{Code: "A", Waste: "compost"})
	s.AddTruckType(model.TruckType{Code: "B", Waste: "plastic"})

	s.AddTruck(model.Truck{ID: 1, TypeCode: "A", Capacity: 10})
	s.AddTruck(model.Truck{ID: 2, TypeCode: "A", Capacity: 20})
	s.AddTruck(model.Truck{ID: 3, TypeCode: "A", Capacity: 20})
	s.AddTruck(model.Truck{ID: 4, TypeCode: "B", Capacity: 15})

	s.AddRoute(model.Route{ID: 1, Waste: "compost", LengthKM: 10})
	s.AddRoute(model.Route{ID: 2, Waste: "compost", LengthKM: 2.5})
	s.AddRoute(model.Route{ID: 3, Waste: "plastic", LengthKM: 5})

	s.AddFacility(model.Facility{ID: 1, Waste: "compost"})
	s.AddFacility(model.Facility{ID: 2, Waste: "compost"})
	s.AddFacility(model.Facility{ID: 3, Waste: "plastic"})

	s.AddEmployee(model.Employee{ID: 10, Name: "Alice Reed", HireDate: date(2015, 3, 1)})
	s.AddEmployee(model.Employee{ID: 11, Name: "Bob Stone", HireDate: date(2016, 6, 1)})
	s.AddEmployee(model.Employee{ID: 12, Name: "Carol Diaz", HireDate: date(2017, 9, 1)})
	s.AddEmployee(model.Employee{ID: 13, Name: "Dave Price", HireDate: date(2018, 1, 1)})

	s.AddDriverQualification(10, "A")
	s.AddDriverQualification(11, "A")
	s.AddDriverQualification(12, "B")
	s.AddDriverQualification(13, "A")
	s.AddDriverQualification(13, "B")
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}
