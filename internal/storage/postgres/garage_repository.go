package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaoppegoraro/garage-management/internal/domain"
)

// GarageRepository persists the static garage layout loaded at bootstrap.
type GarageRepository struct {
	pool *pgxpool.Pool
}

func NewGarageRepository(pool *pgxpool.Pool) *GarageRepository {
	return &GarageRepository{pool: pool}
}

func (r *GarageRepository) CreateSector(ctx context.Context, sector domain.Sector) error {
	const stmt = `
INSERT INTO garage_sectors (sector, base_price, max_capacity, occupied_count, open_hour, close_hour, duration_limit_minutes)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		sector.Name,
		sector.BasePrice,
		sector.MaxCapacity,
		sector.OccupiedCount,
		sector.OpenHour,
		sector.CloseHour,
		sector.DurationLimitMinutes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSectorAlreadyExists
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidCapacity
		}
		return fmt.Errorf("create sector: %w", err)
	}
	return nil
}

func (r *GarageRepository) CreateSpace(ctx context.Context, space domain.Space) error {
	const stmt = `
INSERT INTO parking_spaces (id, sector, is_occupied, lat, lng)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, space.ID, space.Sector, space.IsOccupied, space.Lat, space.Lng)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSpaceAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrSectorNotFound
		}
		return fmt.Errorf("create space: %w", err)
	}
	return nil
}

func (r *GarageRepository) CountSectors(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM garage_sectors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sectors: %w", err)
	}
	return count, nil
}

func (r *GarageRepository) CountSpaces(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parking_spaces`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count spaces: %w", err)
	}
	return count, nil
}
