package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetops/wrangler/core/storage"
)

// Importer applies qualification rosters to the store.
type Importer struct {
	store storage.Store
}

// NewImporter returns an importer over the given store.
func NewImporter(store storage.Store) *Importer {
	return &Importer{store: store}
}

// Apply records every valid qualification and returns how many were
// written. A record is valid when the truck type exists, the name resolves
// to exactly one employee, the employee is not a driver, and the
// qualification is not already on file. Invalid records are skipped; the
// rest of the batch still applies.
func (im *Importer) Apply(ctx context.Context, recs []Qualification) (int, error) {
	applied := 0
	for _, rec := range recs {
		ok, err := im.valid(ctx, rec)
		if err != nil {
			return applied, err
		}
		if !ok {
			continue
		}
		emp, err := im.store.EmployeeByName(ctx, rec.Name)
		if err != nil {
			return applied, fmt.Errorf("roster: employee %q: %w", rec.Name, err)
		}
		if err := im.store.InsertTechnician(ctx, emp.ID, rec.TypeCode); err != nil {
			return applied, fmt.Errorf("roster: insert %q/%s: %w", rec.Name, rec.TypeCode, err)
		}
		applied++
	}
	return applied, nil
}

func (im *Importer) valid(ctx context.Context, rec Qualification) (bool, error) {
	if _, err := im.store.TruckTypeByCode(ctx, rec.TypeCode); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("roster: truck type %q: %w", rec.TypeCode, err)
	}
	emp, err := im.store.EmployeeByName(ctx, rec.Name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("roster: employee %q: %w", rec.Name, err)
	}
	isDriver, err := im.store.IsDriver(ctx, emp.ID)
	if err != nil {
		return false, fmt.Errorf("roster: driver check %d: %w", emp.ID, err)
	}
	if isDriver {
		return false, nil
	}
	qualified, err := im.store.HasTechnicianQualification(ctx, emp.ID, rec.TypeCode)
	if err != nil {
		return false, fmt.Errorf("roster: qualification check %d/%s: %w", emp.ID, rec.TypeCode, err)
	}
	return !qualified, nil
}
