package domain

import "time"

// StatusChange is an immutable audit record of a bed-count mutation.
// One is written per accepted change to BedsAvailable, never updated.
type StatusChange struct {
	ID            string
	ShelterID     string
	Category      Category
	PrevAvailable int
	NewAvailable  int
	ChangedBy     string
	ChangedAt     time.Time
}
