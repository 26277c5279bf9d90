package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

type RecordStatus string

const (
	StatusParked    RecordStatus = "PARKED"
	StatusCompleted RecordStatus = "COMPLETED"
)

// Record is the persisted lifecycle record of one vehicle visit. At most one
// PARKED record may exist per license plate; records are never deleted.
type Record struct {
	ID           string
	LicensePlate string
	EntryTime    time.Time
	ExitTime     null.Time
	Sector       string
	SpaceID      int64
	Lat          null.Float
	Lng          null.Float
	PriceApplied decimal.Decimal
	FinalPrice   decimal.NullDecimal
	Status       RecordStatus
	CreatedAt    time.Time
}
