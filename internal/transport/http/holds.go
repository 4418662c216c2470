package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
)

// HoldCanceller is the minimal interface needed to cancel a hold.
type HoldCanceller interface {
	CancelHold(ctx context.Context, in app.CancelHoldInput) (domain.Hold, error)
}

// HandleCancelHold returns an HTTP handler for POST /holds/{id}/cancel.
func HandleCancelHold(svc HoldCanceller, verifier TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		holdID, ok := parseCancelHoldPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		identity, ok := authenticate(w, r, verifier)
		if !ok {
			return
		}

		hold, err := svc.CancelHold(r.Context(), app.CancelHoldInput{
			HoldID:  holdID,
			StaffID: identity.StaffID,
			Admin:   identity.Role == domain.RoleAdmin,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toHoldResponse(hold))
	}
}

func parseCancelHoldPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "holds" || parts[2] != "cancel" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
