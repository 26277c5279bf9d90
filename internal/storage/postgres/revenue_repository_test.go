package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/guregu/null.v4"

	"github.com/joaoppegoraro/garage-management/internal/domain"
	"github.com/joaoppegoraro/garage-management/internal/testutil"
)

func insertCompletedRecord(t *testing.T, ctx context.Context, pool *pgxpool.Pool, sector string, exitTime time.Time, finalPrice string) {
	t.Helper()
	price := testutil.Price(t, finalPrice)
	rec := domain.Record{
		ID:           uuid.NewString(),
		LicensePlate: "REV-" + uuid.NewString()[:8],
		EntryTime:    exitTime.Add(-time.Hour),
		ExitTime:     null.TimeFrom(exitTime),
		Sector:       sector,
		SpaceID:      1,
		PriceApplied: price,
		Status:       domain.StatusCompleted,
	}
	rec.FinalPrice.Decimal = price
	rec.FinalPrice.Valid = true
	testutil.InsertRecord(t, ctx, pool, rec)
}

func TestRevenueRepository_SumFinalPrices(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewRevenueRepository(pool)

	testutil.InsertSector(t, ctx, pool, "A", "10.00", 10, 0)
	testutil.InsertSector(t, ctx, pool, "B", "12.00", 10, 0)
	testutil.InsertSpace(t, ctx, pool, 1, "A", false, -23.5, -46.6)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	insertCompletedRecord(t, ctx, pool, "A", day.Add(10*time.Hour), "18.00")
	insertCompletedRecord(t, ctx, pool, "A", day.Add(23*time.Hour+59*time.Minute), "5.50")
	insertCompletedRecord(t, ctx, pool, "A", nextDay.Add(time.Minute), "100.00")
	insertCompletedRecord(t, ctx, pool, "B", day.Add(12*time.Hour), "40.00")

	parked := domain.Record{
		ID:           uuid.NewString(),
		LicensePlate: "PARKED-1",
		EntryTime:    day.Add(9 * time.Hour),
		Sector:       "A",
		SpaceID:      1,
		PriceApplied: testutil.Price(t, "10.00"),
		Status:       domain.StatusParked,
	}
	testutil.InsertRecord(t, ctx, pool, parked)

	t.Run("sums only the sector's completed records inside the window", func(t *testing.T) {
		total, err := repo.SumFinalPrices(ctx, "A", day, nextDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := testutil.Price(t, "23.50"); !total.Equal(want) {
			t.Fatalf("expected %s, got %s", want, total)
		}
	})

	t.Run("other sector is isolated", func(t *testing.T) {
		total, err := repo.SumFinalPrices(ctx, "B", day, nextDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := testutil.Price(t, "40.00"); !total.Equal(want) {
			t.Fatalf("expected %s, got %s", want, total)
		}
	})

	t.Run("empty window yields zero", func(t *testing.T) {
		total, err := repo.SumFinalPrices(ctx, "A", day.AddDate(0, 0, -7), day.AddDate(0, 0, -6))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.IsZero() {
			t.Fatalf("expected zero, got %s", total)
		}
	})

	t.Run("unknown sector yields zero", func(t *testing.T) {
		total, err := repo.SumFinalPrices(ctx, "Z", day, nextDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.IsZero() {
			t.Fatalf("expected zero, got %s", total)
		}
	})
}
