package app

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shelterlink/api/internal/availability"
	"github.com/shelterlink/api/internal/clock"
	"github.com/shelterlink/api/internal/domain"
	"github.com/shelterlink/api/internal/geo"
)

// ShelterFilter carries the equality/substring filters the storage layer can
// apply. Geo and open-state filtering stay in the service, where the
// staleness projection runs.
type ShelterFilter struct {
	Neighborhood  string
	PetFriendly   *bool
	ADAAccessible *bool
	LGBTQFriendly *bool
}

type ResourceFilter struct {
	Type         domain.ResourceType
	Neighborhood string
}

type SearchRepository interface {
	ListShelters(ctx context.Context, f ShelterFilter) ([]domain.Shelter, error)
	GetShelter(ctx context.Context, id string) (domain.Shelter, error)
	ListStatuses(ctx context.Context, shelterID string) ([]domain.ShelterStatus, error)
	ListResources(ctx context.Context, f ResourceFilter) ([]domain.Resource, error)
}

type SearchService struct {
	repo  SearchRepository
	clock clock.Clock
}

func NewSearchService(repo SearchRepository, clk clock.Clock) *SearchService {
	return &SearchService{
		repo:  repo,
		clock: clk,
	}
}

const defaultRadiusKm = 10.0

type SearchSheltersInput struct {
	// Near is an optional "lat,lon" anchor string.
	Near     string
	RadiusKm float64
	// Open filters on the decayed status: true keeps shelters with at least
	// one OPEN or LIMITED row, false keeps FULL or UNKNOWN.
	Open          *bool
	Category      domain.Category
	Neighborhood  string
	PetFriendly   *bool
	ADAAccessible *bool
	LGBTQFriendly *bool
}

// SearchShelters answers "what is near me, and is it open". Every status row
// is projected through the conservatism rule before the open filter runs, so
// stale reports are distrusted ahead of filtering. With an anchor, results
// are decorated with distance, sorted ascending and cut at the radius; with
// no anchor, filter-time ordering is preserved.
func (s *SearchService) SearchShelters(ctx context.Context, in SearchSheltersInput) ([]domain.Shelter, error) {
	if in.Category != "" && !in.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	anchor, err := parseNear(in.Near)
	if err != nil {
		return nil, err
	}

	shelters, err := s.repo.ListShelters(ctx, ShelterFilter{
		Neighborhood:  in.Neighborhood,
		PetFriendly:   in.PetFriendly,
		ADAAccessible: in.ADAAccessible,
		LGBTQFriendly: in.LGBTQFriendly,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range shelters {
		for j := range shelters[i].Statuses {
			shelters[i].Statuses[j] = availability.ApplyConservatism(shelters[i].Statuses[j], now)
		}
	}

	if in.Category != "" || in.Open != nil {
		filtered := shelters[:0]
		for _, shelter := range shelters {
			matching := matchingStatuses(shelter.Statuses, in.Category, in.Open)
			if len(matching) == 0 {
				continue
			}
			shelter.Statuses = matching
			filtered = append(filtered, shelter)
		}
		shelters = filtered
	}

	if anchor != nil {
		radius := in.RadiusKm
		if radius <= 0 {
			radius = defaultRadiusKm
		}
		for i := range shelters {
			d := geo.Distance(anchor.lat, anchor.lon, shelters[i].Lat, shelters[i].Lon)
			shelters[i].DistanceKm = &d
		}
		sort.SliceStable(shelters, func(i, j int) bool {
			return distanceKey(shelters[i].DistanceKm) < distanceKey(shelters[j].DistanceKm)
		})
		shelters = trimBeyond(shelters, radius, func(sh domain.Shelter) *float64 { return sh.DistanceKm })
	}

	return shelters, nil
}

// GetShelter returns one shelter with the staleness projection applied to
// every status row.
func (s *SearchService) GetShelter(ctx context.Context, id string) (domain.Shelter, error) {
	shelter, err := s.repo.GetShelter(ctx, id)
	if err != nil {
		return domain.Shelter{}, err
	}
	now := s.clock.Now()
	for i := range shelter.Statuses {
		shelter.Statuses[i] = availability.ApplyConservatism(shelter.Statuses[i], now)
	}
	return shelter, nil
}

// ListShelterStatus returns the decayed status rows for one shelter.
func (s *SearchService) ListShelterStatus(ctx context.Context, shelterID string) ([]domain.ShelterStatus, error) {
	statuses, err := s.repo.ListStatuses(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, domain.ErrStatusNotFound
	}
	now := s.clock.Now()
	for i := range statuses {
		statuses[i] = availability.ApplyConservatism(statuses[i], now)
	}
	return statuses, nil
}

type SearchResourcesInput struct {
	Type         domain.ResourceType
	Near         string
	RadiusKm     float64
	Neighborhood string
}

// SearchResources runs the same filter/sort pipeline for resources, which
// carry no status lifecycle.
func (s *SearchService) SearchResources(ctx context.Context, in SearchResourcesInput) ([]domain.Resource, error) {
	if in.Type != "" && !in.Type.Valid() {
		return nil, domain.ErrInvalidResourceType
	}

	anchor, err := parseNear(in.Near)
	if err != nil {
		return nil, err
	}

	resources, err := s.repo.ListResources(ctx, ResourceFilter{
		Type:         in.Type,
		Neighborhood: in.Neighborhood,
	})
	if err != nil {
		return nil, err
	}

	if anchor != nil {
		radius := in.RadiusKm
		if radius <= 0 {
			radius = defaultRadiusKm
		}
		for i := range resources {
			d := geo.Distance(anchor.lat, anchor.lon, resources[i].Lat, resources[i].Lon)
			resources[i].DistanceKm = &d
		}
		sort.SliceStable(resources, func(i, j int) bool {
			return distanceKey(resources[i].DistanceKm) < distanceKey(resources[j].DistanceKm)
		})
		resources = trimBeyond(resources, radius, func(r domain.Resource) *float64 { return r.DistanceKm })
	}

	return resources, nil
}

// matchingStatuses keeps the rows that satisfy the category and open
// filters. The open filter reads the already-decayed status field.
func matchingStatuses(statuses []domain.ShelterStatus, category domain.Category, open *bool) []domain.ShelterStatus {
	var matching []domain.ShelterStatus
	for _, st := range statuses {
		if category != "" && st.Category != category {
			continue
		}
		if open != nil {
			isOpen := st.Status == domain.BedStatusOpen || st.Status == domain.BedStatusLimited
			if *open != isOpen {
				continue
			}
		}
		matching = append(matching, st)
	}
	return matching
}

type point struct {
	lat, lon float64
}

// parseNear parses an optional "lat,lon" anchor. An empty string means no
// anchor; anything else must be two finite, in-range decimal degrees.
func parseNear(near string) (*point, error) {
	if near == "" {
		return nil, nil
	}
	latStr, lonStr, ok := strings.Cut(near, ",")
	if !ok {
		return nil, domain.ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, domain.ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, domain.ErrInvalidCoordinates
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, domain.ErrInvalidCoordinates
	}
	return &point{lat: lat, lon: lon}, nil
}

// distanceKey orders entities for the ascending distance sort; a missing or
// non-numeric distance sorts last.
func distanceKey(d *float64) float64 {
	if d == nil || math.IsNaN(*d) {
		return math.Inf(1)
	}
	return *d
}

// trimBeyond drops entities whose distance is beyond the radius or could not
// be computed.
func trimBeyond[T any](items []T, radiusKm float64, dist func(T) *float64) []T {
	kept := items[:0]
	for _, item := range items {
		d := dist(item)
		if d == nil || math.IsNaN(*d) || *d > radiusKm {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
