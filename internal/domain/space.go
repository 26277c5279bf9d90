package domain

import "gopkg.in/guregu/null.v4"

// Space is one physical parking slot. It belongs to exactly one sector for
// its whole lifetime; only the occupied flag and nothing else changes.
type Space struct {
	ID         int64
	Sector     string
	IsOccupied bool
	Lat        null.Float
	Lng        null.Float
}
