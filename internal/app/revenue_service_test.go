package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/clock"
	"github.com/joaoppegoraro/garage-management/internal/domain"
)

func TestRevenueService_DailyRevenue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("sums the requested UTC day", func(t *testing.T) {
		repo := &fakeRevenueRepo{total: decimal.RequireFromString("123.456")}
		svc := NewRevenueService(repo, clock.NewFixed(now))

		rev, err := svc.DailyRevenue(context.Background(), "A", time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if repo.sector != "A" {
			t.Fatalf("expected sector A, got %s", repo.sector)
		}
		wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		if !repo.from.Equal(wantFrom) || !repo.to.Equal(wantFrom.AddDate(0, 0, 1)) {
			t.Fatalf("expected range [%v, %v), got [%v, %v)", wantFrom, wantFrom.AddDate(0, 0, 1), repo.from, repo.to)
		}
		if want := decimal.RequireFromString("123.46"); !rev.Amount.Equal(want) {
			t.Fatalf("expected rounded amount %s, got %s", want, rev.Amount)
		}
		if rev.Currency != "BRL" {
			t.Fatalf("expected currency BRL, got %s", rev.Currency)
		}
		if !rev.Timestamp.Equal(now) {
			t.Fatalf("expected timestamp %v, got %v", now, rev.Timestamp)
		}
	})

	t.Run("day without records yields zero", func(t *testing.T) {
		svc := NewRevenueService(&fakeRevenueRepo{total: decimal.Zero}, clock.NewFixed(now))

		rev, err := svc.DailyRevenue(context.Background(), "A", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !rev.Amount.IsZero() {
			t.Fatalf("expected zero amount, got %s", rev.Amount)
		}
	})

	t.Run("requires a sector", func(t *testing.T) {
		svc := NewRevenueService(&fakeRevenueRepo{}, clock.NewFixed(now))

		_, err := svc.DailyRevenue(context.Background(), "", now)
		if err != domain.ErrSectorNameRequired {
			t.Fatalf("expected ErrSectorNameRequired, got %v", err)
		}
	})
}

type fakeRevenueRepo struct {
	total  decimal.Decimal
	sector string
	from   time.Time
	to     time.Time
}

func (f *fakeRevenueRepo) SumFinalPrices(_ context.Context, sector string, from, to time.Time) (decimal.Decimal, error) {
	f.sector = sector
	f.from = from
	f.to = to
	return f.total, nil
}
