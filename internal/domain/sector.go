package domain

import "github.com/shopspring/decimal"

// Sector is a named garage zone with its own capacity and dynamic pricing.
// OccupiedCount is mutated only by the allocation engine and must stay within
// [0, MaxCapacity] under any interleaving of entries and exits.
type Sector struct {
	Name                 string
	BasePrice            decimal.Decimal
	MaxCapacity          int
	OccupiedCount        int
	OpenHour             string
	CloseHour            string
	DurationLimitMinutes int
}

// HasCapacity reports whether the sector can admit another vehicle.
func (s Sector) HasCapacity() bool {
	return s.OccupiedCount < s.MaxCapacity
}
