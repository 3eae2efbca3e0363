package model

import "time"

const (
	// TruckSpeedKPH is the fleet-wide average speed used to derive trip
	// duration from route length.
	TruckSpeedKPH = 5.0

	// TripBuffer is the slack kept free on both sides of a trip when
	// checking truck and driver availability.
	TripBuffer = 30 * time.Minute

	// WorkdayStart and WorkdayEnd bound trip times within a calendar day.
	WorkdayStart = 8 * time.Hour
	WorkdayEnd   = 16 * time.Hour
)

// TripDuration converts a route length into travel time at TruckSpeedKPH.
func TripDuration(lengthKM float64) time.Duration {
	return time.Duration(float64(time.Hour) * lengthKM / TruckSpeedKPH)
}

// Day truncates t to its calendar date, anchored at midnight UTC. All
// date-only comparisons in the scheduler go through this.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns the number of calendar days from a to b. Negative
// when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// Window is a time interval. Overlap checks treat it as open on both ends,
// so windows that merely touch do not conflict.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two windows intersect. Shared endpoints do
// not count as an overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Buffered widens the window by TripBuffer on each side.
func (w Window) Buffered() Window {
	return Window{Start: w.Start.Add(-TripBuffer), End: w.End.Add(TripBuffer)}
}

// TripWindow is the occupancy interval of a trip over a route of the given
// length, excluding buffers.
func TripWindow(start time.Time, lengthKM float64) Window {
	return Window{Start: start, End: start.Add(TripDuration(lengthKM))}
}
