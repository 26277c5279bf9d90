package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/domain"
)

// ParkingRepository persists sectors, spaces and records. Lifecycle
// transitions run their reads and writes through the transaction carried in
// the context; the FOR UPDATE variants pin rows until that transaction ends.
type ParkingRepository struct {
	pool *pgxpool.Pool
}

func NewParkingRepository(pool *pgxpool.Pool) *ParkingRepository {
	return &ParkingRepository{pool: pool}
}

func (r *ParkingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ParkingRepository) HasActiveRecord(ctx context.Context, plate string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM parking_records WHERE license_plate = $1 AND status = 'PARKED')`

	var exists bool
	if err := r.queryRow(ctx, query, plate).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active record: %w", err)
	}
	return exists, nil
}

func (r *ParkingRepository) GetActiveRecordForUpdate(ctx context.Context, plate string) (domain.Record, error) {
	const query = `
SELECT id, license_plate, entry_time, exit_time, sector, space_id, lat, lng, price_applied, final_price, status, created_at
FROM parking_records
WHERE license_plate = $1 AND status = 'PARKED'
FOR UPDATE`

	var rec domain.Record
	var status string
	err := r.queryRow(ctx, query, plate).Scan(
		&rec.ID,
		&rec.LicensePlate,
		&rec.EntryTime,
		&rec.ExitTime,
		&rec.Sector,
		&rec.SpaceID,
		&rec.Lat,
		&rec.Lng,
		&rec.PriceApplied,
		&rec.FinalPrice,
		&status,
		&rec.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Record{}, domain.ErrPlateNotFound
		}
		return domain.Record{}, fmt.Errorf("get active record: %w", err)
	}
	rec.Status = domain.RecordStatus(status)
	return rec, nil
}

func (r *ParkingRepository) ListSectorNames(ctx context.Context) ([]string, error) {
	const query = `SELECT sector FROM garage_sectors ORDER BY sector ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan sector name: %w", err)
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sectors: %w", rows.Err())
	}
	return names, nil
}

func (r *ParkingRepository) GetSectorForUpdate(ctx context.Context, name string) (domain.Sector, error) {
	const query = `
SELECT sector, base_price, max_capacity, occupied_count, open_hour, close_hour, duration_limit_minutes
FROM garage_sectors
WHERE sector = $1
FOR UPDATE`

	var s domain.Sector
	err := r.queryRow(ctx, query, name).Scan(
		&s.Name,
		&s.BasePrice,
		&s.MaxCapacity,
		&s.OccupiedCount,
		&s.OpenHour,
		&s.CloseHour,
		&s.DurationLimitMinutes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Sector{}, domain.ErrSectorNotFound
		}
		return domain.Sector{}, fmt.Errorf("get sector: %w", err)
	}
	return s, nil
}

// FindFreeSpaceForUpdate returns the lowest-id free space of the sector, or
// nil when the sector has none.
func (r *ParkingRepository) FindFreeSpaceForUpdate(ctx context.Context, sector string) (*domain.Space, error) {
	const query = `
SELECT id, sector, is_occupied, lat, lng
FROM parking_spaces
WHERE sector = $1 AND is_occupied = FALSE
ORDER BY id ASC
LIMIT 1
FOR UPDATE`

	var sp domain.Space
	err := r.queryRow(ctx, query, sector).Scan(&sp.ID, &sp.Sector, &sp.IsOccupied, &sp.Lat, &sp.Lng)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find free space: %w", err)
	}
	return &sp, nil
}

func (r *ParkingRepository) GetSpaceByCoordinatesForUpdate(ctx context.Context, lat, lng float64) (domain.Space, error) {
	const query = `
SELECT id, sector, is_occupied, lat, lng
FROM parking_spaces
WHERE lat = $1 AND lng = $2
FOR UPDATE`

	var sp domain.Space
	err := r.queryRow(ctx, query, lat, lng).Scan(&sp.ID, &sp.Sector, &sp.IsOccupied, &sp.Lat, &sp.Lng)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Space{}, domain.ErrSpaceNotFound
		}
		return domain.Space{}, fmt.Errorf("get space by coordinates: %w", err)
	}
	return sp, nil
}

func (r *ParkingRepository) SetSpaceOccupied(ctx context.Context, spaceID int64, occupied bool) error {
	const stmt = `UPDATE parking_spaces SET is_occupied = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, spaceID, occupied)
	if err != nil {
		return fmt.Errorf("set space occupied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpaceNotFound
	}
	return nil
}

// IncrementOccupied bumps the sector counter only while below capacity; a
// miss means the counter and the space flags disagree.
func (r *ParkingRepository) IncrementOccupied(ctx context.Context, sector string) error {
	const stmt = `
UPDATE garage_sectors
SET occupied_count = occupied_count + 1
WHERE sector = $1 AND occupied_count < max_capacity`

	tag, err := r.exec(ctx, stmt, sector)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrDataInconsistency
		}
		return fmt.Errorf("increment occupied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataInconsistency
	}
	return nil
}

// DecrementOccupied never lets the counter go negative; a miss is surfaced,
// not repaired.
func (r *ParkingRepository) DecrementOccupied(ctx context.Context, sector string) error {
	const stmt = `
UPDATE garage_sectors
SET occupied_count = occupied_count - 1
WHERE sector = $1 AND occupied_count > 0`

	tag, err := r.exec(ctx, stmt, sector)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrDataInconsistency
		}
		return fmt.Errorf("decrement occupied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataInconsistency
	}
	return nil
}

func (r *ParkingRepository) CreateRecord(ctx context.Context, rec domain.Record) error {
	const stmt = `
INSERT INTO parking_records (id, license_plate, entry_time, sector, space_id, price_applied, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		rec.ID,
		rec.LicensePlate,
		rec.EntryTime,
		rec.Sector,
		rec.SpaceID,
		rec.PriceApplied,
		string(rec.Status),
		rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (r *ParkingRepository) UpdateRecordLocation(ctx context.Context, recordID, sector string, spaceID int64, lat, lng float64) error {
	const stmt = `
UPDATE parking_records
SET sector = $2, space_id = $3, lat = $4, lng = $5
WHERE id = $1 AND status = 'PARKED'`

	tag, err := r.exec(ctx, stmt, recordID, sector, spaceID, lat, lng)
	if err != nil {
		return fmt.Errorf("update record location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlateNotFound
	}
	return nil
}

func (r *ParkingRepository) CompleteRecord(ctx context.Context, recordID string, exitTime time.Time, finalPrice decimal.Decimal) error {
	const stmt = `
UPDATE parking_records
SET exit_time = $2, final_price = $3, status = 'COMPLETED'
WHERE id = $1 AND status = 'PARKED'`

	tag, err := r.exec(ctx, stmt, recordID, exitTime, finalPrice)
	if err != nil {
		return fmt.Errorf("complete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlateNotFound
	}
	return nil
}

func (r *ParkingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ParkingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ParkingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
