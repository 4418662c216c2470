package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterlink/api/internal/domain"
)

type StaffRepository struct {
	pool *pgxpool.Pool
}

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) GetStaff(ctx context.Context, id string) (domain.Staff, error) {
	const query = `
SELECT id, email, COALESCE(shelter_id::text, ''), role, locale
FROM staff
WHERE id = $1`

	var st domain.Staff
	err := r.pool.QueryRow(ctx, query, id).Scan(&st.ID, &st.Email, &st.ShelterID, &st.Role, &st.Locale)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Staff{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Staff{}, domain.ErrStaffNotFound
		}
		return domain.Staff{}, fmt.Errorf("get staff: %w", err)
	}
	return st, nil
}

func (r *StaffRepository) GetStaffByEmail(ctx context.Context, email string) (domain.Staff, error) {
	const query = `
SELECT id, email, COALESCE(shelter_id::text, ''), role, locale
FROM staff
WHERE LOWER(email) = LOWER($1)`

	var st domain.Staff
	err := r.pool.QueryRow(ctx, query, email).Scan(&st.ID, &st.Email, &st.ShelterID, &st.Role, &st.Locale)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Staff{}, domain.ErrStaffNotFound
		}
		return domain.Staff{}, fmt.Errorf("get staff by email: %w", err)
	}
	return st, nil
}
