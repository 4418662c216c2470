package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
)

// AdminShelterService is the minimal interface for admin shelter creation.
type AdminShelterService interface {
	CreateShelter(ctx context.Context, in app.CreateShelterInput) (domain.Shelter, error)
}

// AdminResourceService is the minimal interface for admin resource creation.
type AdminResourceService interface {
	CreateResource(ctx context.Context, in app.CreateResourceInput) (domain.Resource, error)
}

// AdminStaffService is the minimal interface for admin staff management.
type AdminStaffService interface {
	CreateStaff(ctx context.Context, in app.CreateStaffInput) (domain.Staff, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}

// HandleAdminShelters returns an HTTP handler for creating shelters.
func HandleAdminShelters(svc AdminShelterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createShelterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		shelter, err := svc.CreateShelter(r.Context(), app.CreateShelterInput{
			Name:          req.Name,
			Address:       req.Address,
			Lat:           req.Lat,
			Lon:           req.Lon,
			Neighborhood:  req.Neighborhood,
			Phone:         req.Phone,
			Hours:         req.Hours,
			Website:       req.Website,
			RequiresID:    req.RequiresID,
			PetFriendly:   req.PetFriendly,
			ADAAccessible: req.ADAAccessible,
			LGBTQFriendly: req.LGBTQFriendly,
			CurfewTime:    req.CurfewTime,
			IntakeNotes:   req.IntakeNotes,
			Languages:     req.Languages,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toShelterResponse(shelter))
	}
}

// HandleAdminResources returns an HTTP handler for creating resources.
func HandleAdminResources(svc AdminResourceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createResourceRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		resource, err := svc.CreateResource(r.Context(), app.CreateResourceInput{
			Name:         req.Name,
			Type:         domain.ResourceType(req.Type),
			Address:      req.Address,
			Lat:          req.Lat,
			Lon:          req.Lon,
			Neighborhood: req.Neighborhood,
			Hours:        req.Hours,
			Phone:        req.Phone,
			Notes:        req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toResourceResponse(resource))
	}
}

// HandleAdminStaff returns an HTTP handler for staff creation and listing.
func HandleAdminStaff(svc AdminStaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			members, err := svc.ListStaff(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]staffResponse, 0, len(members))
			for _, st := range members {
				resp = append(resp, toStaffResponse(st))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createStaffRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			staff, err := svc.CreateStaff(r.Context(), app.CreateStaffInput{
				Email:     req.Email,
				ShelterID: req.ShelterID,
				Role:      domain.Role(req.Role),
				Locale:    req.Locale,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toStaffResponse(staff))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createShelterRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Neighborhood  string   `json:"neighborhood,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Hours         string   `json:"hours,omitempty"`
	Website       string   `json:"website,omitempty"`
	RequiresID    bool     `json:"requires_id,omitempty"`
	PetFriendly   bool     `json:"pet_friendly,omitempty"`
	ADAAccessible bool     `json:"ada_accessible,omitempty"`
	LGBTQFriendly bool     `json:"lgbtq_friendly,omitempty"`
	CurfewTime    string   `json:"curfew_time,omitempty"`
	IntakeNotes   string   `json:"intake_notes,omitempty"`
	Languages     []string `json:"languages,omitempty"`
}

type createResourceRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	Hours        string  `json:"hours,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type createStaffRequest struct {
	Email     string `json:"email"`
	ShelterID string `json:"shelter_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

type staffResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	ShelterID string `json:"shelter_id,omitempty"`
	Role      string `json:"role"`
	Locale    string `json:"locale"`
}

func toStaffResponse(st domain.Staff) staffResponse {
	return staffResponse{
		ID:        st.ID,
		Email:     st.Email,
		ShelterID: st.ShelterID,
		Role:      string(st.Role),
		Locale:    st.Locale,
	}
}
