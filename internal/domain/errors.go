package domain

import "errors"

var (
	ErrShelterNotFound      = errors.New("shelter not found")
	ErrStatusNotFound       = errors.New("shelter status not found")
	ErrHoldNotFound         = errors.New("hold not found")
	ErrStaffNotFound        = errors.New("staff member not found")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidResourceType  = errors.New("invalid resource type")
	ErrInvalidCoordinates   = errors.New("invalid coordinates format, use 'lat,lon'")
	ErrInvalidRadius        = errors.New("radius_km must be between 0.1 and 50")
	ErrInsufficientCapacity = errors.New("insufficient bed capacity")
	ErrHoldNotActive        = errors.New("hold is not active")
	ErrBedsExceedTotal      = errors.New("beds_available cannot exceed beds_total")
	ErrNegativeBeds         = errors.New("bed counts cannot be negative")
	ErrNameRequired         = errors.New("name is required")
	ErrAddressRequired      = errors.New("address is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidID            = errors.New("invalid id")
)
