package domain

type ResourceType string

const (
	ResourceFood        ResourceType = "FOOD"
	ResourceShower      ResourceType = "SHOWER"
	ResourceHealth      ResourceType = "HEALTH"
	ResourceLegal       ResourceType = "LEGAL"
	ResourceEmployment  ResourceType = "EMPLOYMENT"
	ResourceHygiene     ResourceType = "HYGIENE"
	ResourceCooling     ResourceType = "COOLING"
	ResourceWarming     ResourceType = "WARMING"
	ResourceSafeParking ResourceType = "SAFE_PARKING"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceFood, ResourceShower, ResourceHealth, ResourceLegal,
		ResourceEmployment, ResourceHygiene, ResourceCooling,
		ResourceWarming, ResourceSafeParking:
		return true
	}
	return false
}

// Resource is a non-shelter service location. It has no status or hold
// lifecycle and participates only in geo search.
type Resource struct {
	ID           string
	Name         string
	Type         ResourceType
	Address      string
	Lat          float64
	Lon          float64
	Neighborhood string
	Hours        string
	Phone        string
	Notes        string

	DistanceKm *float64
}
