package http

import (
	"encoding/json"
	"net/http"

	"github.com/shelterlink/api/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidCoordinates   = "invalid_coordinates"
	codeInvalidCategory      = "invalid_category"
	codeInvalidStatus        = "invalid_status"
	codeInvalidResourceType  = "invalid_resource_type"
	codeInvalidQuantity      = "invalid_quantity"
	codeInvalidRole          = "invalid_role"
	codeInvalidID            = "invalid_id"
	codeNameRequired         = "name_required"
	codeAddressRequired      = "address_required"
	codeEmailRequired        = "email_required"
	codeEmailTaken           = "email_taken"
	codeNegativeBeds         = "negative_beds"
	codeBedsExceedTotal      = "beds_exceed_total"
	codeInsufficientCapacity = "insufficient_capacity"
	codeHoldNotActive        = "hold_not_active"
	codeShelterNotFound      = "shelter_not_found"
	codeStatusNotFound       = "status_not_found"
	codeHoldNotFound         = "hold_not_found"
	codeStaffNotFound        = "staff_not_found"
	codeInvalidToken         = "invalid_token"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a domain sentinel to an HTTP status and error code.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidCoordinates:
		writeError(w, http.StatusBadRequest, codeInvalidCoordinates, err.Error())
	case domain.ErrInvalidCategory:
		writeError(w, http.StatusBadRequest, codeInvalidCategory, err.Error())
	case domain.ErrInvalidStatus:
		writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
	case domain.ErrInvalidResourceType:
		writeError(w, http.StatusBadRequest, codeInvalidResourceType, err.Error())
	case domain.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case domain.ErrInvalidRole:
		writeError(w, http.StatusBadRequest, codeInvalidRole, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrNameRequired:
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case domain.ErrAddressRequired:
		writeError(w, http.StatusBadRequest, codeAddressRequired, err.Error())
	case domain.ErrEmailRequired:
		writeError(w, http.StatusBadRequest, codeEmailRequired, err.Error())
	case domain.ErrNegativeBeds:
		writeError(w, http.StatusBadRequest, codeNegativeBeds, err.Error())
	case domain.ErrBedsExceedTotal:
		writeError(w, http.StatusBadRequest, codeBedsExceedTotal, err.Error())
	case domain.ErrInsufficientCapacity:
		writeError(w, http.StatusConflict, codeInsufficientCapacity, err.Error())
	case domain.ErrHoldNotActive:
		writeError(w, http.StatusConflict, codeHoldNotActive, err.Error())
	case domain.ErrEmailTaken:
		writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
	case domain.ErrShelterNotFound:
		writeError(w, http.StatusNotFound, codeShelterNotFound, err.Error())
	case domain.ErrStatusNotFound:
		writeError(w, http.StatusNotFound, codeStatusNotFound, err.Error())
	case domain.ErrHoldNotFound:
		writeError(w, http.StatusNotFound, codeHoldNotFound, err.Error())
	case domain.ErrStaffNotFound:
		writeError(w, http.StatusNotFound, codeStaffNotFound, err.Error())
	case domain.ErrInvalidToken:
		writeError(w, http.StatusUnauthorized, codeInvalidToken, err.Error())
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
