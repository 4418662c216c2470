package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterlink/api/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateShelter(ctx context.Context, shelter domain.Shelter) error {
	const stmt = `
INSERT INTO shelters (
	id, name, address, lat, lon, neighborhood, phone, hours, website,
	requires_id, pet_friendly, ada_accessible, lgbtq_friendly,
	curfew_time, intake_notes, languages
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, stmt,
		shelter.ID, shelter.Name, shelter.Address, shelter.Lat, shelter.Lon,
		shelter.Neighborhood, shelter.Phone, shelter.Hours, shelter.Website,
		shelter.RequiresID, shelter.PetFriendly, shelter.ADAAccessible,
		shelter.LGBTQFriendly, shelter.CurfewTime, shelter.IntakeNotes,
		shelter.Languages,
	)
	if err != nil {
		return fmt.Errorf("create shelter: %w", err)
	}
	return nil
}

func (r *AdminRepository) CreateResource(ctx context.Context, resource domain.Resource) error {
	const stmt = `
INSERT INTO resources (id, name, type, address, lat, lon, neighborhood, hours, phone, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, stmt,
		resource.ID, resource.Name, resource.Type, resource.Address,
		resource.Lat, resource.Lon, resource.Neighborhood,
		resource.Hours, resource.Phone, resource.Notes,
	)
	if err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

func (r *AdminRepository) CreateStaff(ctx context.Context, staff domain.Staff) error {
	const stmt = `
INSERT INTO staff (id, email, shelter_id, role, locale)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)`

	_, err := r.pool.Exec(ctx, stmt,
		staff.ID, staff.Email, staff.ShelterID, staff.Role, staff.Locale,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	const query = `
SELECT id, email, COALESCE(shelter_id::text, ''), role, locale
FROM staff
ORDER BY email`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var members []domain.Staff
	for rows.Next() {
		var st domain.Staff
		if err := rows.Scan(&st.ID, &st.Email, &st.ShelterID, &st.Role, &st.Locale); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		members = append(members, st)
	}
	return members, rows.Err()
}
