package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterlink/api/internal/domain"
)

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetStatusForUpdate locks the (shelter, category) status row for the span
// of the surrounding transaction. This is the serialization boundary that
// keeps concurrent placements from overselling.
func (r *HoldRepository) GetStatusForUpdate(ctx context.Context, shelterID string, category domain.Category) (domain.ShelterStatus, error) {
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

func (r *HoldRepository) GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	const query = `
SELECT id, shelter_id, category, qty, created_by, status, expires_at, created_at
FROM holds
WHERE id = $1
FOR UPDATE`

	var h domain.Hold
	err := r.queryRow(ctx, query, holdID).Scan(
		&h.ID, &h.ShelterID, &h.Category, &h.Qty, &h.CreatedBy,
		&h.Status, &h.ExpiresAt, &h.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Hold{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		return domain.Hold{}, fmt.Errorf("get hold for update: %w", err)
	}
	return h, nil
}

// SumActiveHolds totals ACTIVE, unexpired hold quantities for a (shelter,
// category) pair. Expired-but-unswept holds are excluded by the expiry
// predicate, so reconciliation lag never blocks placement. The inclusive
// bound mirrors ExpireHolds' strict one: a hold at exactly expires_at is
// still counted here and not yet swept there.
func (r *HoldRepository) SumActiveHolds(ctx context.Context, shelterID string, category domain.Category, now time.Time) (int, error) {
	const query = `
SELECT COALESCE(SUM(qty), 0)
FROM holds
WHERE shelter_id = $1 AND category = $2 AND status = 'ACTIVE' AND expires_at >= $3`

	var total int
	if err := r.queryRow(ctx, query, shelterID, category, now).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum active holds: %w", err)
	}
	return total, nil
}

func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	const stmt = `
INSERT INTO holds (id, shelter_id, category, qty, created_by, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		hold.ID,
		hold.ShelterID,
		hold.Category,
		hold.Qty,
		hold.CreatedBy,
		hold.Status,
		hold.ExpiresAt,
		hold.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidQuantity
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}

func (r *HoldRepository) UpdateHoldStatus(ctx context.Context, holdID string, status domain.HoldStatus) error {
	const stmt = `UPDATE holds SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update hold status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}

// ExpireHolds transitions every ACTIVE hold past its expiry to EXPIRED in a
// single statement and returns the transitioned rows.
func (r *HoldRepository) ExpireHolds(ctx context.Context, now time.Time) ([]domain.Hold, error) {
	const stmt = `
UPDATE holds
SET status = 'EXPIRED'
WHERE status = 'ACTIVE' AND expires_at < $1
RETURNING id, shelter_id, category, qty, created_by, status, expires_at, created_at`

	rows, err := r.query(ctx, stmt, now)
	if err != nil {
		return nil, fmt.Errorf("expire holds: %w", err)
	}
	defer rows.Close()

	var expired []domain.Hold
	for rows.Next() {
		var h domain.Hold
		if err := rows.Scan(
			&h.ID, &h.ShelterID, &h.Category, &h.Qty, &h.CreatedBy,
			&h.Status, &h.ExpiresAt, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expired hold: %w", err)
		}
		expired = append(expired, h)
	}
	return expired, rows.Err()
}

func (r *HoldRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *HoldRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *HoldRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
