package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterlink/api/internal/domain"
)

type StatusRepository struct {
	pool *pgxpool.Pool
}

func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

func (r *StatusRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *StatusRepository) GetStatusForUpdate(ctx context.Context, shelterID string, category domain.Category) (domain.ShelterStatus, error) {
	const query = `
SELECT id, shelter_id, category, beds_total, beds_available, status, last_updated, COALESCE(notes, '')
FROM shelter_status
WHERE shelter_id = $1 AND category = $2
FOR UPDATE`

	var st domain.ShelterStatus
	err := r.queryRow(ctx, query, shelterID, category).Scan(
		&st.ID, &st.ShelterID, &st.Category, &st.BedsTotal, &st.BedsAvailable,
		&st.Status, &st.LastUpdated, &st.Notes,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ShelterStatus{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.ShelterStatus{}, domain.ErrStatusNotFound
		}
		return domain.ShelterStatus{}, fmt.Errorf("get status for update: %w", err)
	}
	return st, nil
}

func (r *StatusRepository) CreateStatus(ctx context.Context, status domain.ShelterStatus) error {
	const stmt = `
INSERT INTO shelter_status (id, shelter_id, category, beds_total, beds_available, status, last_updated, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		status.ID,
		status.ShelterID,
		status.Category,
		status.BedsTotal,
		status.BedsAvailable,
		status.Status,
		status.LastUpdated,
		status.Notes,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrBedsExceedTotal
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create status: %w", err)
	}
	return nil
}

func (r *StatusRepository) SaveStatus(ctx context.Context, status domain.ShelterStatus) error {
	const stmt = `
UPDATE shelter_status
SET beds_total = $2, beds_available = $3, status = $4, last_updated = $5, notes = $6
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		status.ID,
		status.BedsTotal,
		status.BedsAvailable,
		status.Status,
		status.LastUpdated,
		status.Notes,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrBedsExceedTotal
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("save status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusNotFound
	}
	return nil
}

func (r *StatusRepository) InsertStatusChange(ctx context.Context, change domain.StatusChange) error {
	const stmt = `
INSERT INTO status_changes (id, shelter_id, category, prev_available, new_available, changed_by, changed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		change.ID,
		change.ShelterID,
		change.Category,
		change.PrevAvailable,
		change.NewAvailable,
		change.ChangedBy,
		change.ChangedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

// ListStatusChanges returns the audit trail for a shelter, newest first.
func (r *StatusRepository) ListStatusChanges(ctx context.Context, shelterID string) ([]domain.StatusChange, error) {
	const query = `
SELECT id, shelter_id, category, prev_available, new_available, changed_by, changed_at
FROM status_changes
WHERE shelter_id = $1
ORDER BY changed_at DESC`

	rows, err := r.query(ctx, query, shelterID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	var changes []domain.StatusChange
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(
			&c.ID, &c.ShelterID, &c.Category, &c.PrevAvailable,
			&c.NewAvailable, &c.ChangedBy, &c.ChangedAt,
		); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func (r *StatusRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *StatusRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *StatusRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
