package roster

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
	hired := time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC)
	s.AddEmployee(model.Employee{ID: 1, Name: "Alice Reed", HireDate: hired})
	s.AddEmployee(model.Employee{ID: 2, Name: "Bob Stone", HireDate: hired})
	s.AddEmployee(model.Employee{ID: 3, Name: "Carol Diaz", HireDate: hired})
	// Bob already drives; drivers cannot double as technicians.
	s.AddDriverQualification(2, "A")
	// Carol already holds the qualification.
	s.AddTechnicianQualification(3, "A")
	return s
}

func TestApplySkipsInvalidRecords(t *testing.T) {
	store := seed()
	im := NewImporter(store)

	recs := []Qualification{
		{Name: "Alice Reed", TypeCode: "A"},  // valid
		{Name: "Bob Stone", TypeCode: "A"},   // driver
		{Name: "Carol Diaz", TypeCode: "A"},  // already qualified
		{Name: "Nobody Known", TypeCode: "A"},
		{Name: "Alice Reed", TypeCode: "Z"}, // unknown truck type
	}
	applied, err := im.Apply(context.Background(), recs)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	ok, err := store.HasTechnicianQualification(context.Background(), 1, "A")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestApplyEmptyBatch(t *testing.T) {
	im := NewImporter(seed())

	applied, err := im.Apply(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, applied)
}

func TestApplyLaterRecordsStillLand(t *testing.T) {
	store := seed()
	store.AddEmployee(model.Employee{ID: 4, Name: "Dave Price", HireDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)})
	im := NewImporter(store)

	recs := []Qualification{
		{Name: "Bob Stone", TypeCode: "A"}, // skipped, driver
		{Name: "Dave Price", TypeCode: "A"},
	}
	applied, err := im.Apply(context.Background(), recs)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	ok, err := store.HasTechnicianQualification(context.Background(), 4, "A")
	require.NoError(t, err)
	require.True(t, ok)
}
