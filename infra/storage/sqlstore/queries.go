package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/wrangler/core/model"
	"github.com/fleetops/wrangler/core/storage"
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// dayRange returns the Unix-second bounds [from, to) of the calendar day.
func dayRange(day time.Time) (int64, int64) {
	d := model.Day(day)
	return d.Unix(), d.Add(24 * time.Hour).Unix()
}

func (s *Store) RouteByID(ctx context.Context, id int) (model.Route, error) {
	var r model.Route
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, waste, length_km FROM route WHERE id = ?`), id).
		Scan(&r.ID, &r.Waste, &r.LengthKM)
	if err != nil {
		return model.Route{}, notFound(err)
	}
	return r, nil
}

func (s *Store) RoutesByWaste(ctx context.Context, waste model.WasteType) ([]model.Route, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT id, waste, length_km FROM route WHERE waste = ? ORDER BY id`), string(waste))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Route
	for rows.Next() {
		var r model.Route
		if err := rows.Scan(&r.ID, &r.Waste, &r.LengthKM); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) TruckByID(ctx context.Context, id int) (model.Truck, error) {
	var t model.Truck
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, type_code, capacity FROM truck WHERE id = ?`), id).
		Scan(&t.ID, &t.TypeCode, &t.Capacity)
	if err != nil {
		return model.Truck{}, notFound(err)
	}
	return t, nil
}

func (s *Store) TruckTypeByCode(ctx context.Context, code string) (model.TruckType, error) {
	var tt model.TruckType
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT code, waste FROM truck_type WHERE code = ?`), code).
		Scan(&tt.Code, &tt.Waste)
	if err != nil {
		return model.TruckType{}, notFound(err)
	}
	return tt, nil
}

func (s *Store) ListTrucks(ctx context.Context) ([]model.Truck, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type_code, capacity FROM truck ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Truck
	for rows.Next() {
		var t model.Truck
		if err := rows.Scan(&t.ID, &t.TypeCode, &t.Capacity); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) FacilityByID(ctx context.Context, id int) (model.Facility, error) {
	var f model.Facility
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, waste FROM facility WHERE id = ?`), id).
		Scan(&f.ID, &f.Waste)
	if err != nil {
		return model.Facility{}, notFound(err)
	}
	return f, nil
}

func (s *Store) FacilitiesByWaste(ctx context.Context, waste model.WasteType) ([]model.Facility, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT id, waste FROM facility WHERE waste = ? ORDER BY id`), string(waste))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Facility
	for rows.Next() {
		var f model.Facility
		if err := rows.Scan(&f.ID, &f.Waste); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.hire_date, d.type_code
		FROM driver d
		JOIN employee e ON e.id = d.eid
		ORDER BY e.hire_date, e.id, d.type_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Driver
	for rows.Next() {
		var (
			id    int
			name  string
			hired int64
			code  string
		)
		if err := rows.Scan(&id, &name, &hired, &code); err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].Employee.ID == id {
			out[n-1].TruckTypes = append(out[n-1].TruckTypes, code)
			continue
		}
		out = append(out, model.Driver{
			Employee:   model.Employee{ID: id, Name: name, HireDate: time.Unix(hired, 0).UTC()},
			TruckTypes: []string{code},
		})
	}
	return out, rows.Err()
}

func (s *Store) IsDriver(ctx context.Context, eid int) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM driver WHERE eid = ?`), eid).Scan(&n)
	return n > 0, err
}

func (s *Store) EmployeeByName(ctx context.Context, name string) (model.Employee, error) {
	var (
		e     model.Employee
		hired int64
	)
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, name, hire_date FROM employee WHERE name = ?`), name).
		Scan(&e.ID, &e.Name, &hired)
	if err != nil {
		return model.Employee{}, notFound(err)
	}
	e.HireDate = time.Unix(hired, 0).UTC()
	return e, nil
}

func (s *Store) TechniciansByType(ctx context.Context, typeCode string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT eid FROM technician WHERE type_code = ? ORDER BY eid`), typeCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var eid int
		if err := rows.Scan(&eid); err != nil {
			return nil, err
		}
		out = append(out, eid)
	}
	return out, rows.Err()
}

func (s *Store) HasTechnicianQualification(ctx context.Context, eid int, typeCode string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM technician WHERE eid = ? AND type_code = ?`), eid, typeCode).Scan(&n)
	return n > 0, err
}

func (s *Store) InsertTechnician(ctx context.Context, eid int, typeCode string) error {
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO technician (eid, type_code) VALUES (?, ?)`), eid, typeCode)
	if err != nil {
		return fmt.Errorf("sqlstore: insert technician: %w", err)
	}
	return nil
}

const tripColumns = `route_id, truck_id, start_ts, volume, driver_high, driver_low, facility_id`

func (s *Store) scanTrips(rows *sql.Rows) ([]model.Trip, error) {
	defer rows.Close()
	var out []model.Trip
	for rows.Next() {
		var (
			t      model.Trip
			start  int64
			volume sql.NullFloat64
		)
		if err := rows.Scan(&t.RouteID, &t.TruckID, &start, &volume, &t.DriverHigh, &t.DriverLow, &t.FacilityID); err != nil {
			return nil, err
		}
		t.Start = time.Unix(start, 0).UTC()
		if volume.Valid {
			v := volume.Float64
			t.Volume = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListTrips(ctx context.Context) ([]model.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trip ORDER BY start_ts, route_id`)
	if err != nil {
		return nil, err
	}
	return s.scanTrips(rows)
}

func (s *Store) TripsBetween(ctx context.Context, from, to time.Time) ([]model.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+tripColumns+` FROM trip WHERE start_ts >= ? AND start_ts < ? ORDER BY start_ts, route_id`),
		from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}
	return s.scanTrips(rows)
}

func (s *Store) RouteScheduledOn(ctx context.Context, rid int, day time.Time) (bool, error) {
	from, to := dayRange(day)
	var n int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM trip WHERE route_id = ? AND start_ts >= ? AND start_ts < ?`),
		rid, from, to).Scan(&n)
	return n > 0, err
}

func (s *Store) TripsForFacilityOn(ctx context.Context, fid int, day time.Time) ([]model.Trip, error) {
	from, to := dayRange(day)
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+tripColumns+` FROM trip WHERE facility_id = ? AND start_ts >= ? AND start_ts < ? ORDER BY start_ts, route_id`),
		fid, from, to)
	if err != nil {
		return nil, err
	}
	return s.scanTrips(rows)
}

func (s *Store) InsertTrip(ctx context.Context, trip model.Trip) error {
	high, low := model.DriverPair(trip.DriverHigh, trip.DriverLow)
	var volume sql.NullFloat64
	if trip.Volume != nil {
		volume = sql.NullFloat64{Float64: *trip.Volume, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO trip (`+tripColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		trip.RouteID, trip.TruckID, trip.Start.Unix(), volume, high, low, trip.FacilityID)
	if err != nil {
		return fmt.Errorf("sqlstore: insert trip: %w", err)
	}
	return nil
}

func (s *Store) UpdateTripFacility(ctx context.Context, fid int, day time.Time, newFID int) (int, error) {
	from, to := dayRange(day)
	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE trip SET facility_id = ? WHERE facility_id = ? AND start_ts >= ? AND start_ts < ?`),
		newFID, fid, from, to)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: update trip facility: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(moved), nil
}

func (s *Store) MaintainedTruckIDs(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT truck_id FROM maintenance ORDER BY truck_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var tid int
		if err := rows.Scan(&tid); err != nil {
			return nil, err
		}
		out = append(out, tid)
	}
	return out, rows.Err()
}

func (s *Store) MaintenanceForTruck(ctx context.Context, tid int) ([]model.MaintenanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT truck_id, technician_id, date_ts FROM maintenance WHERE truck_id = ? ORDER BY date_ts`), tid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MaintenanceRecord
	for rows.Next() {
		var (
			rec  model.MaintenanceRecord
			date int64
		)
		if err := rows.Scan(&rec.TruckID, &rec.TechnicianID, &date); err != nil {
			return nil, err
		}
		rec.Date = time.Unix(date, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) TruckMaintenanceOn(ctx context.Context, tid int, day time.Time) (bool, error) {
	from, to := dayRange(day)
	var n int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM maintenance WHERE truck_id = ? AND date_ts >= ? AND date_ts < ?`),
		tid, from, to).Scan(&n)
	return n > 0, err
}

func (s *Store) TechniciansBusyOn(ctx context.Context, day time.Time) ([]int, error) {
	from, to := dayRange(day)
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT DISTINCT technician_id FROM maintenance WHERE date_ts >= ? AND date_ts < ? ORDER BY technician_id`),
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var eid int
		if err := rows.Scan(&eid); err != nil {
			return nil, err
		}
		out = append(out, eid)
	}
	return out, rows.Err()
}

func (s *Store) InsertMaintenance(ctx context.Context, rec model.MaintenanceRecord) error {
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO maintenance (truck_id, technician_id, date_ts) VALUES (?, ?, ?)`),
		rec.TruckID, rec.TechnicianID, model.Day(rec.Date).Unix())
	if err != nil {
		return fmt.Errorf("sqlstore: insert maintenance: %w", err)
	}
	return nil
}
