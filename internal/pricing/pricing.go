package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaoppegoraro/garage-management/internal/domain"
)

// Occupancy multipliers applied to a sector's base price. The occupancy ratio
// is evaluated before the arriving vehicle is admitted.
var (
	lowOccupancyFactor    = decimal.RequireFromString("0.90")
	normalOccupancyFactor = decimal.RequireFromString("1.00")
	highOccupancyFactor   = decimal.RequireFromString("1.10")
	fullOccupancyFactor   = decimal.RequireFromString("1.25")
)

// graceMinutes is the free period at the start of every stay.
const graceMinutes = 30

// EntryPrice computes the dynamic price tier for a sector:
// below 25% occupancy a 10% discount applies, from 50% a 10% surcharge,
// from 75% a 25% surcharge.
func EntryPrice(sector domain.Sector) decimal.Decimal {
	ratio := float64(sector.OccupiedCount) / float64(sector.MaxCapacity)
	switch {
	case ratio < 0.25:
		return sector.BasePrice.Mul(lowOccupancyFactor)
	case ratio < 0.50:
		return sector.BasePrice.Mul(normalOccupancyFactor)
	case ratio < 0.75:
		return sector.BasePrice.Mul(highOccupancyFactor)
	default:
		return sector.BasePrice.Mul(fullOccupancyFactor)
	}
}

// FinalPrice bills whole hours, rounded up, at the price locked in on entry.
// Stays of up to 30 minutes are free. Returns ErrInvalidDuration when the
// exit precedes the entry; callers are expected to reject that earlier.
func FinalPrice(entryTime, exitTime time.Time, priceApplied decimal.Decimal) (decimal.Decimal, error) {
	if exitTime.Before(entryTime) {
		return decimal.Zero, domain.ErrInvalidDuration
	}
	minutes := int64(exitTime.Sub(entryTime) / time.Minute)
	if minutes <= graceMinutes {
		return decimal.Zero, nil
	}
	billedHours := (minutes + 59) / 60
	return priceApplied.Mul(decimal.NewFromInt(billedHours)), nil
}
