package scheduling

import (
	"testing"

	"github.com/fleetops/wrangler/core/model"
)

func driver(id int, types ...string) model.Driver {
	return model.Driver{Employee: model.Employee{ID: id}, TruckTypes: types}
}

func TestSecondDriver(t *testing.T) {
	candidates := []model.Driver{driver(1, "A"), driver(2, "B"), driver(3, "A")}

	d, ok := SecondDriver(candidates, 1, "A")
	if !ok || d.Employee.ID != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", d.Employee.ID, ok)
	}

	if _, ok := SecondDriver(candidates, 2, "C"); ok {
		t.Fatal("expected no qualified candidate for type C")
	}
}

func TestDriverPair(t *testing.T) {
	cases := []struct {
		name       string
		candidates []model.Driver
		typeCode   string
		first      int
		second     int
		ok         bool
	}{
		{
			name:       "first qualified takes next in order",
			candidates: []model.Driver{driver(1, "A"), driver(2, "B"), driver(3, "A")},
			typeCode:   "A",
			first:      1, second: 2, ok: true,
		},
		{
			name:       "unqualified first scans for a driver",
			candidates: []model.Driver{driver(1, "B"), driver(2, "B"), driver(3, "A")},
			typeCode:   "A",
			first:      1, second: 3, ok: true,
		},
		{
			name:       "nobody qualified",
			candidates: []model.Driver{driver(1, "B"), driver(2, "B")},
			typeCode:   "A",
			ok:         false,
		},
		{
			name:       "single candidate is not enough",
			candidates: []model.Driver{driver(1, "A")},
			typeCode:   "A",
			ok:         false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, second, ok := driverPair(tc.candidates, tc.typeCode)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if first.Employee.ID != tc.first || second.Employee.ID != tc.second {
				t.Fatalf("pair = (%d, %d), want (%d, %d)",
					first.Employee.ID, second.Employee.ID, tc.first, tc.second)
			}
		})
	}
}
