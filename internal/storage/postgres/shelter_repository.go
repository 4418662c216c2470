package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
)

type ShelterRepository struct {
	pool *pgxpool.Pool
}

func NewShelterRepository(pool *pgxpool.Pool) *ShelterRepository {
	return &ShelterRepository{pool: pool}
}

const shelterColumns = `
id, name, address, lat, lon, neighborhood,
COALESCE(phone, ''), COALESCE(hours, ''), COALESCE(website, ''),
requires_id, pet_friendly, ada_accessible, lgbtq_friendly,
COALESCE(curfew_time, ''), COALESCE(intake_notes, ''), COALESCE(languages, '{}')`

// ListShelters applies the SQL-expressible filters (substring neighborhood
// match, boolean flags) and loads each shelter's status rows. Staleness and
// open-state filtering happen in the service layer.
func (r *ShelterRepository) ListShelters(ctx context.Context, f app.ShelterFilter) ([]domain.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters WHERE 1=1`
	var args []any

	if f.Neighborhood != "" {
		args = append(args, "%"+f.Neighborhood+"%")
		query += fmt.Sprintf(" AND neighborhood ILIKE $%d", len(args))
	}
	if f.PetFriendly != nil {
		args = append(args, *f.PetFriendly)
		query += fmt.Sprintf(" AND pet_friendly = $%d", len(args))
	}
	if f.ADAAccessible != nil {
		args = append(args, *f.ADAAccessible)
		query += fmt.Sprintf(" AND ada_accessible = $%d", len(args))
	}
	if f.LGBTQFriendly != nil {
		args = append(args, *f.LGBTQFriendly)
		query += fmt.Sprintf(" AND lgbtq_friendly = $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shelters: %w", err)
	}
	defer rows.Close()

	var shelters []domain.Shelter
	var ids []string
	for rows.Next() {
		sh, err := scanShelter(rows)
		if err != nil {
			return nil, err
		}
		shelters = append(shelters, sh)
		ids = append(ids, sh.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shelters: %w", err)
	}
	if len(shelters) == 0 {
		return shelters, nil
	}

	statuses, err := r.listStatusesForShelters(ctx, ids)
	if err != nil {
		return nil, err
	}
	byShelter := make(map[string][]domain.ShelterStatus, len(shelters))
	for _, st := range statuses {
		byShelter[st.ShelterID] = append(byShelter[st.ShelterID], st)
	}
	for i := range shelters {
		shelters[i].Statuses = byShelter[shelters[i].ID]
	}
	return shelters, nil
}

func (r *ShelterRepository) GetShelter(ctx context.Context, id string) (domain.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return domain.Shelter{}, fmt.Errorf("get shelter: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if isInvalidUUID(err) {
				return domain.Shelter{}, domain.ErrInvalidID
			}
			return domain.Shelter{}, fmt.Errorf("get shelter: %w", err)
		}
		return domain.Shelter{}, domain.ErrShelterNotFound
	}
	shelter, err := scanShelter(rows)
	if err != nil {
		return domain.Shelter{}, err
	}
	rows.Close()

	statuses, err := r.ListStatuses(ctx, id)
	if err != nil {
		return domain.Shelter{}, err
	}
	shelter.Statuses = statuses
	return shelter, nil
}

func (r *ShelterRepository) ListStatuses(ctx context.Context, shelterID string) ([]domain.ShelterStatus, error) {
	return r.listStatusesForShelters(ctx, []string{shelterID})
}

func (r *ShelterRepository) listStatusesForShelters(ctx context.Context, shelterIDs []string) ([]domain.ShelterStatus, error) {
	const query = `
SELECT id, shelter_id, category, beds_total, beds_available, status, last_updated, COALESCE(notes, '')
FROM shelter_status
WHERE shelter_id = ANY($1)
ORDER BY shelter_id, category`

	rows, err := r.pool.Query(ctx, query, shelterIDs)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []domain.ShelterStatus
	for rows.Next() {
		var st domain.ShelterStatus
		if err := rows.Scan(
			&st.ID, &st.ShelterID, &st.Category, &st.BedsTotal, &st.BedsAvailable,
			&st.Status, &st.LastUpdated, &st.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

func (r *ShelterRepository) ListResources(ctx context.Context, f app.ResourceFilter) ([]domain.Resource, error) {
	query := `
SELECT id, name, type, address, lat, lon, neighborhood,
COALESCE(hours, ''), COALESCE(phone, ''), COALESCE(notes, '')
FROM resources WHERE 1=1`
	var args []any

	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.Neighborhood != "" {
		args = append(args, "%"+f.Neighborhood+"%")
		query += fmt.Sprintf(" AND neighborhood ILIKE $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Type, &res.Address, &res.Lat, &res.Lon,
			&res.Neighborhood, &res.Hours, &res.Phone, &res.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func scanShelter(rows pgx.Rows) (domain.Shelter, error) {
	var sh domain.Shelter
	if err := rows.Scan(
		&sh.ID, &sh.Name, &sh.Address, &sh.Lat, &sh.Lon, &sh.Neighborhood,
		&sh.Phone, &sh.Hours, &sh.Website,
		&sh.RequiresID, &sh.PetFriendly, &sh.ADAAccessible, &sh.LGBTQFriendly,
		&sh.CurfewTime, &sh.IntakeNotes, &sh.Languages,
	); err != nil {
		return domain.Shelter{}, fmt.Errorf("scan shelter: %w", err)
	}
	return sh, nil
}
