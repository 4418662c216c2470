package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/availability"
	"github.com/shelterlink/api/internal/domain"
	"github.com/shelterlink/api/internal/geo"
)

// ShelterSearcher is the minimal interface for shelter read endpoints.
type ShelterSearcher interface {
	SearchShelters(ctx context.Context, in app.SearchSheltersInput) ([]domain.Shelter, error)
	GetShelter(ctx context.Context, id string) (domain.Shelter, error)
	ListShelterStatus(ctx context.Context, shelterID string) ([]domain.ShelterStatus, error)
}

// StatusUpdater is the minimal interface for staff bed-count updates.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, in app.UpdateStatusInput) (domain.ShelterStatus, error)
}

// HoldPlacer is the minimal interface for placing holds.
type HoldPlacer interface {
	PlaceHold(ctx context.Context, in app.PlaceHoldInput) (domain.Hold, error)
}

// HandleShelters returns an HTTP handler for the shelter search endpoint.
func HandleShelters(svc ShelterSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		in := app.SearchSheltersInput{
			Near:         q.Get("near"),
			Neighborhood: q.Get("neighborhood"),
			Category:     domain.Category(q.Get("category")),
		}

		radius, err := parseRadiusParam(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidCoordinates, "radius_km must be between 0.1 and 50")
			return
		}
		in.RadiusKm = radius

		for _, p := range []struct {
			name string
			dst  **bool
		}{
			{"open", &in.Open},
			{"pet_friendly", &in.PetFriendly},
			{"ada_accessible", &in.ADAAccessible},
			{"lgbtq_friendly", &in.LGBTQFriendly},
		} {
			val, err := parseBoolParam(q, p.name)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid "+p.name)
				return
			}
			*p.dst = val
		}

		shelters, err := svc.SearchShelters(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]shelterResponse, 0, len(shelters))
		for _, sh := range shelters {
			resp = append(resp, toShelterResponse(sh))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleShelterSubtree routes /shelters/{id}, /shelters/{id}/status and
// /shelters/{id}/holds. Reads are public; mutations require a bearer token.
func HandleShelterSubtree(search ShelterSearcher, statuses StatusUpdater, holds HoldPlacer, verifier TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, rest, ok := parseShelterPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch rest {
		case "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			shelter, err := search.GetShelter(r.Context(), shelterID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toShelterResponse(shelter))

		case "status":
			switch r.Method {
			case http.MethodGet:
				rows, err := search.ListShelterStatus(r.Context(), shelterID)
				if err != nil {
					writeDomainError(w, err)
					return
				}
				resp := make([]statusResponse, 0, len(rows))
				for _, st := range rows {
					resp = append(resp, toStatusResponse(st))
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			case http.MethodPut:
				identity, ok := authenticate(w, r, verifier)
				if !ok {
					return
				}
				var req updateStatusRequest
				dec := json.NewDecoder(r.Body)
				dec.DisallowUnknownFields()
				if err := dec.Decode(&req); err != nil {
					writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
					return
				}
				status, err := statuses.UpdateStatus(r.Context(), app.UpdateStatusInput{
					ShelterID:     shelterID,
					Category:      domain.Category(req.Category),
					BedsTotal:     req.BedsTotal,
					BedsAvailable: req.BedsAvailable,
					Status:        domain.BedStatus(req.Status),
					Notes:         req.Notes,
					StaffID:       identity.StaffID,
				})
				if err != nil {
					writeDomainError(w, err)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(toStatusResponse(status))
			default:
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			}

		case "holds":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			identity, ok := authenticate(w, r, verifier)
			if !ok {
				return
			}
			var req placeHoldRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			hold, err := holds.PlaceHold(r.Context(), app.PlaceHoldInput{
				ShelterID: shelterID,
				Category:  domain.Category(req.Category),
				Qty:       req.Qty,
				StaffID:   identity.StaffID,
				TTL:       time.Duration(req.TTLMinutes) * time.Minute,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toHoldResponse(hold))

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// authenticate validates the bearer token and writes the error response on
// failure.
func authenticate(w http.ResponseWriter, r *http.Request, verifier TokenVerifier) (app.Identity, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
		return app.Identity{}, false
	}
	identity, err := verifier.VerifyAccessToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid token")
		return app.Identity{}, false
	}
	return identity, true
}

func parseShelterPath(path string) (id, rest string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "shelters" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		return parts[1], "", true
	}
	return parts[1], parts[2], true
}

func parseBoolParam(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

const (
	minRadiusKm = 0.1
	maxRadiusKm = 50.0
)

// parseRadiusParam reads radius_km, bounding it to 0.1-50 km. Absent means
// zero, which the search layer replaces with its default.
func parseRadiusParam(q url.Values) (float64, error) {
	raw := q.Get("radius_km")
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if val < minRadiusKm || val > maxRadiusKm {
		return 0, domain.ErrInvalidRadius
	}
	return val, nil
}

type shelterResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	Lat           float64          `json:"lat"`
	Lon           float64          `json:"lon"`
	Neighborhood  string           `json:"neighborhood"`
	Phone         string           `json:"phone,omitempty"`
	Hours         string           `json:"hours,omitempty"`
	Website       string           `json:"website,omitempty"`
	RequiresID    bool             `json:"requires_id"`
	PetFriendly   bool             `json:"pet_friendly"`
	ADAAccessible bool             `json:"ada_accessible"`
	LGBTQFriendly bool             `json:"lgbtq_friendly"`
	CurfewTime    string           `json:"curfew_time,omitempty"`
	IntakeNotes   string           `json:"intake_notes,omitempty"`
	Languages     []string         `json:"languages,omitempty"`
	Statuses      []statusResponse `json:"statuses"`
	DistanceKm    *float64         `json:"distance_km,omitempty"`
	Distance      string           `json:"distance,omitempty"`
}

type statusResponse struct {
	ID              string    `json:"id"`
	ShelterID       string    `json:"shelter_id"`
	Category        string    `json:"category"`
	BedsTotal       int       `json:"beds_total"`
	BedsAvailable   int       `json:"beds_available"`
	Status          string    `json:"status"`
	AvailabilityPct float64   `json:"availability_pct"`
	LastUpdated     time.Time `json:"last_updated"`
	Notes           string    `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Category      string `json:"category"`
	BedsTotal     int    `json:"beds_total"`
	BedsAvailable int    `json:"beds_available"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type placeHoldRequest struct {
	Category   string `json:"category"`
	Qty        int    `json:"qty"`
	TTLMinutes int    `json:"ttl_minutes,omitempty"`
}

type holdResponse struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	Category  string    `json:"category"`
	Qty       int       `json:"qty"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func toShelterResponse(sh domain.Shelter) shelterResponse {
	resp := shelterResponse{
		ID:            sh.ID,
		Name:          sh.Name,
		Address:       sh.Address,
		Lat:           sh.Lat,
		Lon:           sh.Lon,
		Neighborhood:  sh.Neighborhood,
		Phone:         sh.Phone,
		Hours:         sh.Hours,
		Website:       sh.Website,
		RequiresID:    sh.RequiresID,
		PetFriendly:   sh.PetFriendly,
		ADAAccessible: sh.ADAAccessible,
		LGBTQFriendly: sh.LGBTQFriendly,
		CurfewTime:    sh.CurfewTime,
		IntakeNotes:   sh.IntakeNotes,
		Languages:     sh.Languages,
		Statuses:      make([]statusResponse, 0, len(sh.Statuses)),
		DistanceKm:    sh.DistanceKm,
	}
	if sh.DistanceKm != nil {
		resp.Distance = geo.FormatDistance(*sh.DistanceKm)
	}
	for _, st := range sh.Statuses {
		resp.Statuses = append(resp.Statuses, toStatusResponse(st))
	}
	return resp
}

func toStatusResponse(st domain.ShelterStatus) statusResponse {
	return statusResponse{
		ID:              st.ID,
		ShelterID:       st.ShelterID,
		Category:        string(st.Category),
		BedsTotal:       st.BedsTotal,
		BedsAvailable:   st.BedsAvailable,
		Status:          string(st.Status),
		AvailabilityPct: availability.Percentage(st),
		LastUpdated:     st.LastUpdated,
		Notes:           st.Notes,
	}
}

func toHoldResponse(h domain.Hold) holdResponse {
	return holdResponse{
		ID:        h.ID,
		ShelterID: h.ShelterID,
		Category:  string(h.Category),
		Qty:       h.Qty,
		Status:    string(h.Status),
		ExpiresAt: h.ExpiresAt,
		CreatedAt: h.CreatedAt,
	}
}
