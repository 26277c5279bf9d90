package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/clock"
	"github.com/joaoppegoraro/garage-management/internal/domain"
)

type RevenueRepository interface {
	SumFinalPrices(ctx context.Context, sector string, from, to time.Time) (decimal.Decimal, error)
}

// RevenueService aggregates billed amounts over completed records. Pure
// read path: no locking required.
type RevenueService struct {
	repo  RevenueRepository
	clock clock.Clock
}

func NewRevenueService(repo RevenueRepository, clk clock.Clock) *RevenueService {
	return &RevenueService{repo: repo, clock: clk}
}

const revenueCurrency = "BRL"

type DailyRevenue struct {
	Amount    decimal.Decimal
	Currency  string
	Timestamp time.Time
}

// DailyRevenue sums final prices of completed records whose exit falls on
// the given UTC calendar day in the given sector. Days with no matching
// records yield a zero amount, not an error.
func (s *RevenueService) DailyRevenue(ctx context.Context, sector string, date time.Time) (DailyRevenue, error) {
	if sector == "" {
		return DailyRevenue{}, domain.ErrSectorNameRequired
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	total, err := s.repo.SumFinalPrices(ctx, sector, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return DailyRevenue{}, err
	}

	return DailyRevenue{
		Amount:    total.Round(2),
		Currency:  revenueCurrency,
		Timestamp: s.clock.Now(),
	}, nil
}
