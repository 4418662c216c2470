package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
	"github.com/shelterlink/api/internal/geo"
)

// ResourceSearcher is the minimal interface for the resource search endpoint.
type ResourceSearcher interface {
	SearchResources(ctx context.Context, in app.SearchResourcesInput) ([]domain.Resource, error)
}

// HandleResources returns an HTTP handler for the resource search endpoint.
func HandleResources(svc ResourceSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		radius, err := parseRadiusParam(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidCoordinates, "radius_km must be between 0.1 and 50")
			return
		}

		resources, err := svc.SearchResources(r.Context(), app.SearchResourcesInput{
			Type:         domain.ResourceType(q.Get("type")),
			Near:         q.Get("near"),
			RadiusKm:     radius,
			Neighborhood: q.Get("neighborhood"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]resourceResponse, 0, len(resources))
		for _, res := range resources {
			resp = append(resp, toResourceResponse(res))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type resourceResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Neighborhood string   `json:"neighborhood"`
	Hours        string   `json:"hours,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
	Distance     string   `json:"distance,omitempty"`
}

func toResourceResponse(res domain.Resource) resourceResponse {
	resp := resourceResponse{
		ID:           res.ID,
		Name:         res.Name,
		Type:         string(res.Type),
		Address:      res.Address,
		Lat:          res.Lat,
		Lon:          res.Lon,
		Neighborhood: res.Neighborhood,
		Hours:        res.Hours,
		Phone:        res.Phone,
		Notes:        res.Notes,
		DistanceKm:   res.DistanceKm,
	}
	if res.DistanceKm != nil {
		resp.Distance = geo.FormatDistance(*res.DistanceKm)
	}
	return resp
}
