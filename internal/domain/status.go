package domain

import "time"

type Category string

const (
	CategoryMen    Category = "MEN"
	CategoryWomen  Category = "WOMEN"
	CategoryFamily Category = "FAMILY"
	CategoryYouth  Category = "YOUTH"
	CategoryMixed  Category = "MIXED"
)

// Valid reports whether c is one of the known demographic categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryFamily, CategoryYouth, CategoryMixed:
		return true
	}
	return false
}

type BedStatus string

const (
	BedStatusOpen    BedStatus = "OPEN"
	BedStatusLimited BedStatus = "LIMITED"
	BedStatusFull    BedStatus = "FULL"
	BedStatusUnknown BedStatus = "UNKNOWN"
)

// Valid reports whether s is one of the known bed statuses.
func (s BedStatus) Valid() bool {
	switch s {
	case BedStatusOpen, BedStatusLimited, BedStatusFull, BedStatusUnknown:
		return true
	}
	return false
}

// ShelterStatus is one row per (shelter, category) pair.
// Invariant: 0 <= BedsAvailable <= BedsTotal at rest.
type ShelterStatus struct {
	ID            string
	ShelterID     string
	Category      Category
	BedsTotal     int
	BedsAvailable int
	Status        BedStatus
	LastUpdated   time.Time
	Notes         string
}
