package domain

import "time"

type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "ACTIVE"
	HoldStatusExpired   HoldStatus = "EXPIRED"
	HoldStatusCancelled HoldStatus = "CANCELLED"
)

// Hold reserves bed capacity for a limited time. It never mutates
// BedsAvailable; while ACTIVE it only constrains the effective-available
// computation. EXPIRED and CANCELLED are terminal.
type Hold struct {
	ID        string
	ShelterID string
	Category  Category
	Qty       int
	CreatedBy string
	Status    HoldStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}
