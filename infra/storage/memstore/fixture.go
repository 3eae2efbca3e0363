package memstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fleetops/wrangler/core/model"
)

// Fixture is the on-disk seed format. Dates use the 2006-01-02 layout;
// trip starts use 2006-01-02 15:04.
type Fixture struct {
	TruckTypes []fixtureTruckType   `json:"truck_types" yaml:"truck_types"`
	Trucks     []fixtureTruck       `json:"trucks" yaml:"trucks"`
	Routes     []fixtureRoute       `json:"routes" yaml:"routes"`
	Facilities []fixtureFacility    `json:"facilities" yaml:"facilities"`
	Employees  []fixtureEmployee    `json:"employees" yaml:"employees"`
	Trips      []fixtureTrip        `json:"trips" yaml:"trips"`
	Service    []fixtureMaintenance `json:"maintenance" yaml:"maintenance"`
}

type fixtureTruckType struct {
	Code  string `json:"code" yaml:"code"`
	Waste string `json:"waste" yaml:"waste"`
}

type fixtureTruck struct {
	ID       int     `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	Capacity float64 `json:"capacity" yaml:"capacity"`
}

type fixtureRoute struct {
	ID       int     `json:"id" yaml:"id"`
	Waste    string  `json:"waste" yaml:"waste"`
	LengthKM float64 `json:"length_km" yaml:"length_km"`
}

type fixtureFacility struct {
	ID    int    `json:"id" yaml:"id"`
	Waste string `json:"waste" yaml:"waste"`
}

type fixtureEmployee struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	HireDate string `json:"hire_date" yaml:"hire_date"`
	// Drives lists the truck types the employee may drive; Services the
	// types they may maintain.
	Drives   []string `json:"drives" yaml:"drives"`
	Services []string `json:"services" yaml:"services"`
}

type fixtureTrip struct {
	RouteID  int    `json:"route_id" yaml:"route_id"`
	TruckID  int    `json:"truck_id" yaml:"truck_id"`
	Start    string `json:"start" yaml:"start"`
	Driver1  int    `json:"driver1" yaml:"driver1"`
	Driver2  int    `json:"driver2" yaml:"driver2"`
	Facility int    `json:"facility" yaml:"facility"`
}

type fixtureMaintenance struct {
	TruckID      int    `json:"truck_id" yaml:"truck_id"`
	TechnicianID int    `json:"technician_id" yaml:"technician_id"`
	Date         string `json:"date" yaml:"date"`
}

// LoadFile seeds the store from a YAML or JSON fixture, chosen by file
// extension.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fixture: %w", err)
	}
	var fx Fixture
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fx); err != nil {
			return fmt.Errorf("fixture %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &fx); err != nil {
			return fmt.Errorf("fixture %s: %w", path, err)
		}
	default:
		return fmt.Errorf("fixture %s: unsupported extension %q", path, ext)
	}
	return s.Load(fx)
}

// Load seeds the store from an in-memory fixture.
func (s *Store) Load(fx Fixture) error {
	for _, tt := range fx.TruckTypes {
		s.AddTruckType(model.TruckType{Code: tt.Code, Waste: model.WasteType(tt.Waste)})
	}
	for _, t := range fx.Trucks {
		s.AddTruck(model.Truck{ID: t.ID, TypeCode: t.Type, Capacity: t.Capacity})
	}
	for _, r := range fx.Routes {
		s.AddRoute(model.Route{ID: r.ID, Waste: model.WasteType(r.Waste), LengthKM: r.LengthKM})
	}
	for _, f := range fx.Facilities {
		s.AddFacility(model.Facility{ID: f.ID, Waste: model.WasteType(f.Waste)})
	}
	for _, e := range fx.Employees {
		hired, err := time.ParseInLocation(time.DateOnly, e.HireDate, time.UTC)
		if err != nil {
			return fmt.Errorf("fixture: employee %d hire date: %w", e.ID, err)
		}
		s.AddEmployee(model.Employee{ID: e.ID, Name: e.Name, HireDate: hired})
		for _, code := range e.Drives {
			s.AddDriverQualification(e.ID, code)
		}
		for _, code := range e.Services {
			s.AddTechnicianQualification(e.ID, code)
		}
	}
	for _, t := range fx.Trips {
		start, err := time.ParseInLocation("2006-01-02 15:04", t.Start, time.UTC)
		if err != nil {
			return fmt.Errorf("fixture: trip route %d start: %w", t.RouteID, err)
		}
		s.AddTrip(model.Trip{
			RouteID:    t.RouteID,
			TruckID:    t.TruckID,
			Start:      start,
			DriverHigh: t.Driver1,
			DriverLow:  t.Driver2,
			FacilityID: t.Facility,
		})
	}
	for _, rec := range fx.Service {
		date, err := time.ParseInLocation(time.DateOnly, rec.Date, time.UTC)
		if err != nil {
			return fmt.Errorf("fixture: maintenance truck %d date: %w", rec.TruckID, err)
		}
		s.AddMaintenance(model.MaintenanceRecord{TruckID: rec.TruckID, TechnicianID: rec.TechnicianID, Date: date})
	}
	return nil
}
