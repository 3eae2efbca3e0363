package model

import "time"

// WasteType categorizes refuse, e.g. "compost" or "plastic recycling".
// It constrains which trucks and facilities may handle a route's load.
type WasteType string

// Route is a fixed collection circuit. Length determines trip duration at
// the fleet's average speed.
type Route struct {
	ID       int
	Waste    WasteType
	LengthKM float64
}

// TruckType associates a vehicle class with the single waste type it can
// carry. Driver and technician qualifications refer to the type code.
type TruckType struct {
	Code  string
	Waste WasteType
}

// Truck is a vehicle of a given type. Capacity is in cubic meters.
type Truck struct {
	ID       int
	TypeCode string
	Capacity float64
}

// Employee is a member of staff. Names are unique across the fleet.
type Employee struct {
	ID       int
	Name     string
	HireDate time.Time
}

// Driver is an employee together with the set of truck type codes they are
// qualified to drive.
type Driver struct {
	Employee   Employee
	TruckTypes []string
}

// Qualified reports whether the driver may operate the given truck type.
func (d Driver) Qualified(typeCode string) bool {
	for _, c := range d.TruckTypes {
		if c == typeCode {
			return true
		}
	}
	return false
}

// Facility is a disposal site accepting a single waste type.
type Facility struct {
	ID    int
	Waste WasteType
}

// Trip assigns a truck, a driver pair and a facility to a route at a start
// time. The driver ids are stored as a normalized unordered pair:
// DriverHigh >= DriverLow. Volume is unknown until the trip completes.
type Trip struct {
	RouteID    int
	TruckID    int
	Start      time.Time
	Volume     *float64
	DriverHigh int
	DriverLow  int
	FacilityID int
}

// Involves reports whether the employee is one of the trip's two drivers.
func (t Trip) Involves(eid int) bool {
	return t.DriverHigh == eid || t.DriverLow == eid
}

// DriverPair normalizes two employee ids into (high, low) storage order.
func DriverPair(a, b int) (high, low int) {
	if a >= b {
		return a, b
	}
	return b, a
}

// MaintenanceRecord books a technician to service a truck on a calendar
// day. Date is normalized to midnight UTC.
type MaintenanceRecord struct {
	TruckID      int
	TechnicianID int
	Date         time.Time
}
