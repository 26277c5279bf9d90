package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/domain"
	"github.com/joaoppegoraro/garage-management/internal/pricing"
)

// ParkingRepository is the transactional storage surface the lifecycle and
// allocation logic runs against. The *ForUpdate methods lock the returned
// row for the remainder of the surrounding transaction.
type ParkingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	HasActiveRecord(ctx context.Context, plate string) (bool, error)
	GetActiveRecordForUpdate(ctx context.Context, plate string) (domain.Record, error)
	ListSectorNames(ctx context.Context) ([]string, error)
	GetSectorForUpdate(ctx context.Context, name string) (domain.Sector, error)
	FindFreeSpaceForUpdate(ctx context.Context, sector string) (*domain.Space, error)
	GetSpaceByCoordinatesForUpdate(ctx context.Context, lat, lng float64) (domain.Space, error)
	SetSpaceOccupied(ctx context.Context, spaceID int64, occupied bool) error
	IncrementOccupied(ctx context.Context, sector string) error
	DecrementOccupied(ctx context.Context, sector string) error
	CreateRecord(ctx context.Context, rec domain.Record) error
	UpdateRecordLocation(ctx context.Context, recordID, sector string, spaceID int64, lat, lng float64) error
	CompleteRecord(ctx context.Context, recordID string, exitTime time.Time, finalPrice decimal.Decimal) error
}

// Allocator owns every mutation of sector occupancy counters and space
// occupied flags. All methods must run inside a transaction opened by the
// caller; they never commit on their own.
type Allocator struct {
	repo ParkingRepository
}

func NewAllocator(repo ParkingRepository) *Allocator {
	return &Allocator{repo: repo}
}

// Allocation is the sector and space granted to an arriving vehicle, with
// the entry price computed against the pre-admission occupancy.
type Allocation struct {
	Sector     domain.Sector
	Space      domain.Space
	EntryPrice decimal.Decimal
}

// Allocate scans sectors in ascending name order and takes the lowest-id
// free space of the first sector with spare capacity. The sector row is
// locked before its counter is re-checked, so two concurrent entries cannot
// both take the last slot. A sector that reports spare capacity without a
// free space is corrupted state and surfaces as ErrDataInconsistency.
func (a *Allocator) Allocate(ctx context.Context) (Allocation, error) {
	names, err := a.repo.ListSectorNames(ctx)
	if err != nil {
		return Allocation{}, err
	}

	for _, name := range names {
		sector, err := a.repo.GetSectorForUpdate(ctx, name)
		if err != nil {
			return Allocation{}, err
		}
		if !sector.HasCapacity() {
			continue
		}

		space, err := a.repo.FindFreeSpaceForUpdate(ctx, sector.Name)
		if err != nil {
			return Allocation{}, err
		}
		if space == nil {
			return Allocation{}, domain.ErrDataInconsistency
		}

		entryPrice := pricing.EntryPrice(sector)

		if err := a.repo.SetSpaceOccupied(ctx, space.ID, true); err != nil {
			return Allocation{}, err
		}
		if err := a.repo.IncrementOccupied(ctx, sector.Name); err != nil {
			return Allocation{}, err
		}

		space.IsOccupied = true
		return Allocation{Sector: sector, Space: *space, EntryPrice: entryPrice}, nil
	}

	return Allocation{}, domain.ErrGarageFull
}

// Release frees a space and returns its slot to the owning sector. The
// decrement is guarded in storage; driving a counter negative surfaces as
// ErrDataInconsistency.
func (a *Allocator) Release(ctx context.Context, spaceID int64, sector string) error {
	if err := a.repo.SetSpaceOccupied(ctx, spaceID, false); err != nil {
		return err
	}
	return a.repo.DecrementOccupied(ctx, sector)
}

// Relocate moves a record onto the space the vehicle actually parked in.
// Reporting the already-assigned space is a no-op. A reported space held by
// a different vehicle is ErrSpaceConflict. When the sectors differ, both
// occupancy counters are adjusted inside the same transaction.
func (a *Allocator) Relocate(ctx context.Context, rec domain.Record, reported domain.Space) error {
	if reported.ID == rec.SpaceID {
		return nil
	}
	if reported.IsOccupied {
		return domain.ErrSpaceConflict
	}

	if err := a.repo.SetSpaceOccupied(ctx, rec.SpaceID, false); err != nil {
		return err
	}
	if err := a.repo.SetSpaceOccupied(ctx, reported.ID, true); err != nil {
		return err
	}
	if reported.Sector != rec.Sector {
		if err := a.repo.DecrementOccupied(ctx, rec.Sector); err != nil {
			return err
		}
		if err := a.repo.IncrementOccupied(ctx, reported.Sector); err != nil {
			return err
		}
	}
	return nil
}
