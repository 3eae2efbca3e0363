package scheduling

import "github.com/fleetops/wrangler/core/model"

// SecondDriver scans candidates in order and returns the first driver that
// is qualified for the truck type and is not excludeID. The boolean is
// false when no candidate qualifies.
func SecondDriver(candidates []model.Driver, excludeID int, typeCode string) (model.Driver, bool) {
	for _, d := range candidates {
		if d.Employee.ID == excludeID {
			continue
		}
		if d.Qualified(typeCode) {
			return d, true
		}
	}
	return model.Driver{}, false
}

// driverPair picks the two drivers for a trip from an ordered candidate
// list. The first candidate always rides; when they can drive the truck
// the next candidate in order joins them, otherwise the list is scanned
// for the first candidate who can. At least one of the pair must be
// qualified for the truck type.
func driverPair(candidates []model.Driver, typeCode string) (model.Driver, model.Driver, bool) {
	if len(candidates) < 2 {
		return model.Driver{}, model.Driver{}, false
	}
	first := candidates[0]
	if first.Qualified(typeCode) {
		return first, candidates[1], true
	}
	second, ok := SecondDriver(candidates[1:], first.Employee.ID, typeCode)
	if !ok {
		return model.Driver{}, model.Driver{}, false
	}
	return first, second, true
}
