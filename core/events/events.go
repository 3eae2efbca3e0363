// Package events defines the notifications published on the internal bus
// after each scheduling decision.
package events

import (
	"time"

	"github.com/fleetops/wrangler/core/model"
)

// Event is implemented by every bus payload.
type Event interface {
	Kind() string
}

// TripScheduled is published after a trip row is committed.
type TripScheduled struct {
	Trip model.Trip
}

func (TripScheduled) Kind() string { return "trip_scheduled" }

// TripRejected is published when a scheduling request is turned down.
type TripRejected struct {
	RouteID int
	Start   time.Time
	Reason  string
}

func (TripRejected) Kind() string { return "trip_rejected" }

// BatchScheduled is published after a batch call, with the number of trips
// committed for the truck.
type BatchScheduled struct {
	TruckID int
	Day     time.Time
	Count   int
}

func (BatchScheduled) Kind() string { return "batch_scheduled" }

// MaintenanceScheduled is published for every maintenance slot booked.
type MaintenanceScheduled struct {
	Record model.MaintenanceRecord
}

func (MaintenanceScheduled) Kind() string { return "maintenance_scheduled" }

// WasteRerouted is published after trips are moved to an alternate
// facility.
type WasteRerouted struct {
	FacilityID  int
	AlternateID int
	Day         time.Time
	Count       int
}

func (WasteRerouted) Kind() string { return "waste_rerouted" }
