package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"

	"github.com/joaoppegoraro/garage-management/internal/clock"
	"github.com/joaoppegoraro/garage-management/internal/domain"
	"github.com/joaoppegoraro/garage-management/internal/pricing"
)

// ParkingService drives a vehicle record through its lifecycle:
// entry (record created, space allocated), parked (assigned location
// corrected to the reported one) and exit (billed, space released).
// Every transition commits as one atomic unit or not at all.
type ParkingService struct {
	repo      ParkingRepository
	allocator *Allocator
	clock     clock.Clock
}

func NewParkingService(repo ParkingRepository, clk clock.Clock) *ParkingService {
	return &ParkingService{
		repo:      repo,
		allocator: NewAllocator(repo),
		clock:     clk,
	}
}

type EntryInput struct {
	LicensePlate string
	EntryTime    time.Time
}

// ProcessEntry admits a vehicle: it must not already be parked, the entry
// time must not be in the past, and a sector with spare capacity must exist.
func (s *ParkingService) ProcessEntry(ctx context.Context, in EntryInput) (domain.Record, error) {
	if in.LicensePlate == "" {
		return domain.Record{}, domain.ErrLicensePlateRequired
	}
	if in.EntryTime.Before(s.clock.Now()) {
		return domain.Record{}, domain.ErrInvalidEntryTime
	}

	var result domain.Record

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		parked, err := s.repo.HasActiveRecord(txCtx, in.LicensePlate)
		if err != nil {
			return err
		}
		if parked {
			return domain.ErrDuplicateEntry
		}

		alloc, err := s.allocator.Allocate(txCtx)
		if err != nil {
			return err
		}

		rec := domain.Record{
			ID:           uuid.NewString(),
			LicensePlate: in.LicensePlate,
			EntryTime:    in.EntryTime.UTC(),
			Sector:       alloc.Sector.Name,
			SpaceID:      alloc.Space.ID,
			PriceApplied: alloc.EntryPrice,
			Status:       domain.StatusParked,
			CreatedAt:    s.clock.Now(),
		}

		// The partial unique index on active plates backs this up when a
		// concurrent entry for the same plate slips past the pre-check.
		if err := s.repo.CreateRecord(txCtx, rec); err != nil {
			return err
		}

		result = rec
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}
	return result, nil
}

type ParkedInput struct {
	LicensePlate string
	Lat          float64
	Lng          float64
}

// ProcessParked records where the vehicle physically parked. When the
// reported coordinates belong to a space other than the assigned one, the
// record is relocated onto it.
func (s *ParkingService) ProcessParked(ctx context.Context, in ParkedInput) (domain.Record, error) {
	if in.LicensePlate == "" {
		return domain.Record{}, domain.ErrLicensePlateRequired
	}

	var result domain.Record

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rec, err := s.repo.GetActiveRecordForUpdate(txCtx, in.LicensePlate)
		if err != nil {
			return err
		}

		space, err := s.repo.GetSpaceByCoordinatesForUpdate(txCtx, in.Lat, in.Lng)
		if err != nil {
			return err
		}

		if err := s.allocator.Relocate(txCtx, rec, space); err != nil {
			return err
		}
		if space.ID != rec.SpaceID {
			rec.Sector = space.Sector
			rec.SpaceID = space.ID
		}
		rec.Lat = null.FloatFrom(in.Lat)
		rec.Lng = null.FloatFrom(in.Lng)

		if err := s.repo.UpdateRecordLocation(txCtx, rec.ID, rec.Sector, rec.SpaceID, in.Lat, in.Lng); err != nil {
			return err
		}

		result = rec
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}
	return result, nil
}

type ExitInput struct {
	LicensePlate string
	ExitTime     time.Time
}

// ProcessExit completes the record, bills the stay and releases the space.
// An exit before the recorded entry is rejected without touching state.
func (s *ParkingService) ProcessExit(ctx context.Context, in ExitInput) (domain.Record, error) {
	if in.LicensePlate == "" {
		return domain.Record{}, domain.ErrLicensePlateRequired
	}

	var result domain.Record

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rec, err := s.repo.GetActiveRecordForUpdate(txCtx, in.LicensePlate)
		if err != nil {
			return err
		}

		if in.ExitTime.Before(rec.EntryTime) {
			return domain.ErrInvalidExitTime
		}

		finalPrice, err := pricing.FinalPrice(rec.EntryTime, in.ExitTime, rec.PriceApplied)
		if err != nil {
			return err
		}

		if err := s.repo.CompleteRecord(txCtx, rec.ID, in.ExitTime.UTC(), finalPrice); err != nil {
			return err
		}
		if err := s.allocator.Release(txCtx, rec.SpaceID, rec.Sector); err != nil {
			return err
		}

		rec.ExitTime = null.TimeFrom(in.ExitTime.UTC())
		rec.FinalPrice = decimal.NewNullDecimal(finalPrice)
		rec.Status = domain.StatusCompleted
		result = rec
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}
	return result, nil
}
