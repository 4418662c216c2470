package app

import (
	"context"
	"testing"
	"time"

	"github.com/shelterlink/api/internal/clock"
	"github.com/shelterlink/api/internal/domain"
)

func TestSearchService_SearchShelters(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	downtown := domain.Shelter{
		ID: "sh-downtown", Name: "Downtown Shelter", Lat: 34.05, Lon: -118.25,
		Statuses: []domain.ShelterStatus{
			{ShelterID: "sh-downtown", Category: domain.CategoryMen, BedsTotal: 50, BedsAvailable: 30, Status: domain.BedStatusOpen, LastUpdated: now.Add(-time.Hour)},
		},
	}
	valley := domain.Shelter{
		ID: "sh-valley", Name: "Valley Shelter", Lat: 34.10, Lon: -118.40,
		Statuses: []domain.ShelterStatus{
			{ShelterID: "sh-valley", Category: domain.CategoryWomen, BedsTotal: 20, BedsAvailable: 2, Status: domain.BedStatusLimited, LastUpdated: now.Add(-time.Hour)},
		},
	}

	makeSvc := func(shelters ...domain.Shelter) *SearchService {
		return NewSearchService(newFakeSearchRepo(shelters, nil), clock.NewFixed(now))
	}

	t.Run("anchor attaches distance and trims radius", func(t *testing.T) {
		svc := makeSvc(valley, downtown)

		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{
			Near: "34.05,-118.25", RadiusKm: 5,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].ID != "sh-downtown" {
			t.Fatalf("expected only downtown within 5km, got %v", got)
		}
		if got[0].DistanceKm == nil {
			t.Fatal("expected distance attached")
		}
		if *got[0].DistanceKm > 0.001 {
			t.Fatalf("expected near-zero distance, got %f", *got[0].DistanceKm)
		}
	})

	t.Run("anchor sorts ascending by distance", func(t *testing.T) {
		svc := makeSvc(valley, downtown)

		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{
			Near: "34.05,-118.25", RadiusKm: 100,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected both shelters, got %d", len(got))
		}
		if got[0].ID != "sh-downtown" || got[1].ID != "sh-valley" {
			t.Fatalf("expected downtown first, got %s then %s", got[0].ID, got[1].ID)
		}
	})

	t.Run("no anchor preserves repository order", func(t *testing.T) {
		svc := makeSvc(valley, downtown)

		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected both shelters, got %d", len(got))
		}
		if got[0].ID != "sh-valley" {
			t.Fatalf("expected repository order preserved, got %s first", got[0].ID)
		}
		if got[0].DistanceKm != nil {
			t.Fatal("expected no distance without anchor")
		}
	})

	t.Run("category filter narrows status rows", func(t *testing.T) {
		svc := makeSvc(valley, downtown)

		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Category: domain.CategoryMen})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].ID != "sh-downtown" {
			t.Fatalf("expected only downtown for MEN, got %v", got)
		}
		if len(got[0].Statuses) != 1 || got[0].Statuses[0].Category != domain.CategoryMen {
			t.Fatalf("expected statuses narrowed to MEN, got %v", got[0].Statuses)
		}
	})

	t.Run("stale open rows decay before the open filter", func(t *testing.T) {
		stale := domain.Shelter{
			ID: "sh-stale", Name: "Stale Shelter", Lat: 34.05, Lon: -118.25,
			Statuses: []domain.ShelterStatus{
				{ShelterID: "sh-stale", Category: domain.CategoryMen, BedsTotal: 50, BedsAvailable: 30, Status: domain.BedStatusOpen, LastUpdated: now.Add(-13 * time.Hour)},
			},
		}
		svc := makeSvc(stale, downtown)

		open := true
		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Open: &open})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].ID != "sh-downtown" {
			t.Fatalf("expected stale shelter excluded from open results, got %v", got)
		}
	})

	t.Run("open false keeps full and unknown", func(t *testing.T) {
		full := domain.Shelter{
			ID: "sh-full", Name: "Full Shelter", Lat: 34.05, Lon: -118.25,
			Statuses: []domain.ShelterStatus{
				{ShelterID: "sh-full", Category: domain.CategoryMen, BedsTotal: 50, BedsAvailable: 0, Status: domain.BedStatusFull, LastUpdated: now.Add(-time.Hour)},
			},
		}
		svc := makeSvc(full, downtown)

		open := false
		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Open: &open})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].ID != "sh-full" {
			t.Fatalf("expected only full shelter, got %v", got)
		}
	})

	t.Run("default radius applies when unset", func(t *testing.T) {
		svc := makeSvc(valley, downtown)

		got, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Near: "34.05,-118.25"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// Valley sits roughly 15km out, beyond the 10km default.
		if len(got) != 1 || got[0].ID != "sh-downtown" {
			t.Fatalf("expected default radius to trim valley, got %v", got)
		}
	})

	t.Run("invalid near values", func(t *testing.T) {
		svc := makeSvc(downtown)

		for _, near := range []string{"downtown", "34.05", "91,-118.25", "34.05,-181", "abc,def"} {
			_, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Near: near})
			if err != domain.ErrInvalidCoordinates {
				t.Fatalf("near %q: expected ErrInvalidCoordinates, got %v", near, err)
			}
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		svc := makeSvc(downtown)

		_, err := svc.SearchShelters(context.Background(), SearchSheltersInput{Category: "DOGS"})
		if err != domain.ErrInvalidCategory {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})
}

func TestSearchService_GetShelter(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	shelter := domain.Shelter{
		ID: "sh-1", Name: "Downtown Shelter",
		Statuses: []domain.ShelterStatus{
			{ShelterID: "sh-1", Category: domain.CategoryMen, Status: domain.BedStatusOpen, LastUpdated: now.Add(-13 * time.Hour)},
			{ShelterID: "sh-1", Category: domain.CategoryWomen, Status: domain.BedStatusFull, LastUpdated: now.Add(-13 * time.Hour)},
		},
	}
	svc := NewSearchService(newFakeSearchRepo([]domain.Shelter{shelter}, nil), clock.NewFixed(now))

	got, err := svc.GetShelter(context.Background(), "sh-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Statuses[0].Status != domain.BedStatusUnknown {
		t.Fatalf("expected stale OPEN decayed to UNKNOWN, got %s", got.Statuses[0].Status)
	}
	if got.Statuses[1].Status != domain.BedStatusFull {
		t.Fatalf("expected FULL untouched by decay, got %s", got.Statuses[1].Status)
	}

	_, err = svc.GetShelter(context.Background(), "missing")
	if err != domain.ErrShelterNotFound {
		t.Fatalf("expected ErrShelterNotFound, got %v", err)
	}
}

func TestSearchService_ListShelterStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	shelter := domain.Shelter{
		ID: "sh-1",
		Statuses: []domain.ShelterStatus{
			{ShelterID: "sh-1", Category: domain.CategoryMen, Status: domain.BedStatusLimited, LastUpdated: now.Add(-14 * time.Hour)},
		},
	}
	svc := NewSearchService(newFakeSearchRepo([]domain.Shelter{shelter}, nil), clock.NewFixed(now))

	statuses, err := svc.ListShelterStatus(context.Background(), "sh-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(statuses) != 1 || statuses[0].Status != domain.BedStatusUnknown {
		t.Fatalf("expected decayed UNKNOWN row, got %v", statuses)
	}

	_, err = svc.ListShelterStatus(context.Background(), "empty")
	if err != domain.ErrStatusNotFound {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
}

func TestSearchService_SearchResources(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	nearFood := domain.Resource{ID: "res-near", Type: domain.ResourceFood, Lat: 34.05, Lon: -118.25}
	farFood := domain.Resource{ID: "res-far", Type: domain.ResourceFood, Lat: 34.10, Lon: -118.40}

	svc := NewSearchService(newFakeSearchRepo(nil, []domain.Resource{farFood, nearFood}), clock.NewFixed(now))

	t.Run("anchor sorts and trims", func(t *testing.T) {
		got, err := svc.SearchResources(context.Background(), SearchResourcesInput{
			Type: domain.ResourceFood, Near: "34.05,-118.25", RadiusKm: 5,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].ID != "res-near" {
			t.Fatalf("expected only nearby resource, got %v", got)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.SearchResources(context.Background(), SearchResourcesInput{Type: "BEDS"})
		if err != domain.ErrInvalidResourceType {
			t.Fatalf("expected ErrInvalidResourceType, got %v", err)
		}
	})

	t.Run("invalid near", func(t *testing.T) {
		_, err := svc.SearchResources(context.Background(), SearchResourcesInput{Near: "nope"})
		if err != domain.ErrInvalidCoordinates {
			t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
		}
	})
}

type fakeSearchRepo struct {
	shelters  []domain.Shelter
	resources []domain.Resource
}

func newFakeSearchRepo(shelters []domain.Shelter, resources []domain.Resource) *fakeSearchRepo {
	return &fakeSearchRepo{shelters: shelters, resources: resources}
}

func (r *fakeSearchRepo) ListShelters(_ context.Context, f ShelterFilter) ([]domain.Shelter, error) {
	out := make([]domain.Shelter, 0, len(r.shelters))
	for _, sh := range r.shelters {
		copied := sh
		copied.Statuses = append([]domain.ShelterStatus(nil), sh.Statuses...)
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeSearchRepo) GetShelter(_ context.Context, id string) (domain.Shelter, error) {
	for _, sh := range r.shelters {
		if sh.ID == id {
			copied := sh
			copied.Statuses = append([]domain.ShelterStatus(nil), sh.Statuses...)
			return copied, nil
		}
	}
	return domain.Shelter{}, domain.ErrShelterNotFound
}

func (r *fakeSearchRepo) ListStatuses(_ context.Context, shelterID string) ([]domain.ShelterStatus, error) {
	for _, sh := range r.shelters {
		if sh.ID == shelterID {
			return append([]domain.ShelterStatus(nil), sh.Statuses...), nil
		}
	}
	return nil, nil
}

func (r *fakeSearchRepo) ListResources(_ context.Context, f ResourceFilter) ([]domain.Resource, error) {
	out := make([]domain.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if f.Type != "" && res.Type != f.Type {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}
