package app

import (
	"context"

	"github.com/shelterlink/api/internal/domain"
	"github.com/shelterlink/api/internal/geo"
)

type AdminRepository interface {
	CreateShelter(ctx context.Context, shelter domain.Shelter) error
	CreateResource(ctx context.Context, resource domain.Resource) error
	CreateStaff(ctx context.Context, staff domain.Staff) error
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}

type AdminService struct {
	repo AdminRepository
}

func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

type CreateShelterInput struct {
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
}

func (s *AdminService) CreateShelter(ctx context.Context, in CreateShelterInput) (domain.Shelter, error) {
	if in.Name == "" {
		return domain.Shelter{}, domain.ErrNameRequired
	}
	if in.Address == "" {
		return domain.Shelter{}, domain.ErrAddressRequired
	}
	if in.Lat < -90 || in.Lat > 90 || in.Lon < -180 || in.Lon > 180 {
		return domain.Shelter{}, domain.ErrInvalidCoordinates
	}

	neighborhood := in.Neighborhood
	if neighborhood == "" {
		neighborhood = geo.ClassifyNeighborhood(in.Lat, in.Lon)
	}

	shelter := domain.Shelter{
		ID:            newID(),
		Name:          in.Name,
		Address:       in.Address,
		Lat:           in.Lat,
		Lon:           in.Lon,
		Neighborhood:  neighborhood,
		Phone:         in.Phone,
		Hours:         in.Hours,
		Website:       in.Website,
		RequiresID:    in.RequiresID,
		PetFriendly:   in.PetFriendly,
		ADAAccessible: in.ADAAccessible,
		LGBTQFriendly: in.LGBTQFriendly,
		CurfewTime:    in.CurfewTime,
		IntakeNotes:   in.IntakeNotes,
		Languages:     in.Languages,
	}
	if err := s.repo.CreateShelter(ctx, shelter); err != nil {
		return domain.Shelter{}, err
	}
	return shelter, nil
}

type CreateResourceInput struct {
	Name         string
	Type         domain.ResourceType
	Address      string
	Lat          float64
	Lon          float64
	Neighborhood string
	Hours        string
	Phone        string
	Notes        string
}

func (s *AdminService) CreateResource(ctx context.Context, in CreateResourceInput) (domain.Resource, error) {
	if in.Name == "" {
		return domain.Resource{}, domain.ErrNameRequired
	}
	if !in.Type.Valid() {
		return domain.Resource{}, domain.ErrInvalidResourceType
	}
	if in.Address == "" {
		return domain.Resource{}, domain.ErrAddressRequired
	}
	if in.Lat < -90 || in.Lat > 90 || in.Lon < -180 || in.Lon > 180 {
		return domain.Resource{}, domain.ErrInvalidCoordinates
	}

	neighborhood := in.Neighborhood
	if neighborhood == "" {
		neighborhood = geo.ClassifyNeighborhood(in.Lat, in.Lon)
	}

	resource := domain.Resource{
		ID:           newID(),
		Name:         in.Name,
		Type:         in.Type,
		Address:      in.Address,
		Lat:          in.Lat,
		Lon:          in.Lon,
		Neighborhood: neighborhood,
		Hours:        in.Hours,
		Phone:        in.Phone,
		Notes:        in.Notes,
	}
	if err := s.repo.CreateResource(ctx, resource); err != nil {
		return domain.Resource{}, err
	}
	return resource, nil
}

type CreateStaffInput struct {
	Email     string
	ShelterID string
	Role      domain.Role
	Locale    string
}

func (s *AdminService) CreateStaff(ctx context.Context, in CreateStaffInput) (domain.Staff, error) {
	if in.Email == "" {
		return domain.Staff{}, domain.ErrEmailRequired
	}
	role := in.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return domain.Staff{}, domain.ErrInvalidRole
	}
	locale := in.Locale
	if locale == "" {
		locale = "en"
	}

	staff := domain.Staff{
		ID:        newID(),
		Email:     in.Email,
		ShelterID: in.ShelterID,
		Role:      role,
		Locale:    locale,
	}
	if err := s.repo.CreateStaff(ctx, staff); err != nil {
		return domain.Staff{}, err
	}
	return staff, nil
}

func (s *AdminService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.ListStaff(ctx)
}
