package domain

// Shelter represents a shelter site and its descriptive attributes.
// Status rows, holds and status changes hang off it per category.
type Shelter struct {
	ID            string
	Name          string
	Address       string
	Lat           float64
	Lon           float64
	Neighborhood  string
	Phone         string
	Hours         string
	Website       string
	RequiresID    bool
	PetFriendly   bool
	ADAAccessible bool
	LGBTQFriendly bool
	CurfewTime    string
	IntakeNotes   string
	Languages     []string

	Statuses []ShelterStatus

	// DistanceKm is populated by search when an anchor point is given.
	DistanceKm *float64
}
