package app

import (
	"context"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"

	"github.com/joaoppegoraro/garage-management/internal/domain"
)

type GarageRepository interface {
	CreateSector(ctx context.Context, sector domain.Sector) error
	CreateSpace(ctx context.Context, space domain.Space) error
	CountSectors(ctx context.Context) (int, error)
	CountSpaces(ctx context.Context) (int, error)
}

// GarageService exposes the plain create operations the one-time bootstrap
// consumes. It holds no state beyond the repository.
type GarageService struct {
	repo GarageRepository
}

func NewGarageService(repo GarageRepository) *GarageService {
	return &GarageService{repo: repo}
}

type CreateSectorInput struct {
	Name                 string
	BasePrice            decimal.Decimal
	MaxCapacity          int
	OpenHour             string
	CloseHour            string
	DurationLimitMinutes int
}

func (s *GarageService) CreateSector(ctx context.Context, in CreateSectorInput) (domain.Sector, error) {
	if in.Name == "" {
		return domain.Sector{}, domain.ErrSectorNameRequired
	}
	if in.MaxCapacity < 1 {
		return domain.Sector{}, domain.ErrInvalidCapacity
	}
	if !in.BasePrice.IsPositive() {
		return domain.Sector{}, domain.ErrInvalidBasePrice
	}

	sector := domain.Sector{
		Name:                 in.Name,
		BasePrice:            in.BasePrice,
		MaxCapacity:          in.MaxCapacity,
		OccupiedCount:        0,
		OpenHour:             in.OpenHour,
		CloseHour:            in.CloseHour,
		DurationLimitMinutes: in.DurationLimitMinutes,
	}

	if err := s.repo.CreateSector(ctx, sector); err != nil {
		return domain.Sector{}, err
	}
	return sector, nil
}

type CreateSpaceInput struct {
	ID     int64
	Sector string
	Lat    float64
	Lng    float64
}

func (s *GarageService) CreateSpace(ctx context.Context, in CreateSpaceInput) (domain.Space, error) {
	if in.Sector == "" {
		return domain.Space{}, domain.ErrSectorNameRequired
	}

	space := domain.Space{
		ID:         in.ID,
		Sector:     in.Sector,
		IsOccupied: false,
		Lat:        null.FloatFrom(in.Lat),
		Lng:        null.FloatFrom(in.Lng),
	}

	if err := s.repo.CreateSpace(ctx, space); err != nil {
		return domain.Space{}, err
	}
	return space, nil
}

// IsEmpty reports whether the store holds no garage definitions at all.
// The bootstrap runs only in that case.
func (s *GarageService) IsEmpty(ctx context.Context) (bool, error) {
	sectors, err := s.repo.CountSectors(ctx)
	if err != nil {
		return false, err
	}
	if sectors > 0 {
		return false, nil
	}
	spaces, err := s.repo.CountSpaces(ctx)
	if err != nil {
		return false, err
	}
	return spaces == 0, nil
}
