package app

import (
	"context"
	"time"

	"github.com/shelterlink/api/internal/clock"
	"github.com/shelterlink/api/internal/domain"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetStatusForUpdate(ctx context.Context, shelterID string, category domain.Category) (domain.ShelterStatus, error)
	GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	SumActiveHolds(ctx context.Context, shelterID string, category domain.Category, now time.Time) (int, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
	UpdateHoldStatus(ctx context.Context, holdID string, status domain.HoldStatus) error
	ExpireHolds(ctx context.Context, now time.Time) ([]domain.Hold, error)
}

type HoldService struct {
	repo    HoldRepository
	clock   clock.Clock
	holdTTL time.Duration
}

const defaultHoldTTL = 6 * time.Hour

func NewHoldService(repo HoldRepository, clk clock.Clock, opts ...HoldServiceOption) *HoldService {
	svc := &HoldService{
		repo:    repo,
		clock:   clk,
		holdTTL: defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type HoldServiceOption func(*HoldService)

// WithHoldTTL overrides the default lifetime for new holds.
func WithHoldTTL(d time.Duration) HoldServiceOption {
	return func(s *HoldService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

type PlaceHoldInput struct {
	ShelterID string
	Category  domain.Category
	Qty       int
	StaffID   string
	TTL       time.Duration
}

// PlaceHold reserves qty beds against a (shelter, category) pair. The check
// against effective availability and the insert run inside one transaction
// with the status row locked, so two concurrent placements cannot jointly
// oversell.
func (s *HoldService) PlaceHold(ctx context.Context, in PlaceHoldInput) (domain.Hold, error) {
	if in.Qty <= 0 {
		return domain.Hold{}, domain.ErrInvalidQuantity
	}
	if !in.Category.Valid() {
		return domain.Hold{}, domain.ErrInvalidCategory
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = s.holdTTL
	}

	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		status, err := s.repo.GetStatusForUpdate(txCtx, in.ShelterID, in.Category)
		if err != nil {
			return err
		}
		if status.BedsAvailable < 0 || status.BedsAvailable > status.BedsTotal {
			// Corrupt row; abort rather than compute against it.
			return domain.ErrBedsExceedTotal
		}

		activeQty, err := s.repo.SumActiveHolds(txCtx, in.ShelterID, in.Category, now)
		if err != nil {
			return err
		}

		effective := status.BedsAvailable - activeQty
		if in.Qty > effective {
			return domain.ErrInsufficientCapacity
		}

		hold := domain.Hold{
			ID:        newID(),
			ShelterID: in.ShelterID,
			Category:  in.Category,
			Qty:       in.Qty,
			CreatedBy: in.StaffID,
			Status:    domain.HoldStatusActive,
			ExpiresAt: now.Add(ttl),
			CreatedAt: now,
		}
		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			return err
		}

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

type CancelHoldInput struct {
	HoldID  string
	StaffID string
	Admin   bool
}

// CancelHold transitions an ACTIVE hold to CANCELLED. Only the creator or an
// ADMIN caller may cancel; EXPIRED and CANCELLED holds are terminal.
func (s *HoldService) CancelHold(ctx context.Context, in CancelHoldInput) (domain.Hold, error) {
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldForUpdate(txCtx, in.HoldID)
		if err != nil {
			return err
		}
		if hold.Status != domain.HoldStatusActive {
			return domain.ErrHoldNotActive
		}
		if hold.CreatedBy != in.StaffID && !in.Admin {
			return domain.ErrForbidden
		}

		if err := s.repo.UpdateHoldStatus(txCtx, hold.ID, domain.HoldStatusCancelled); err != nil {
			return err
		}
		hold.Status = domain.HoldStatusCancelled
		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

// ReconcileExpired flips every ACTIVE hold past its expiry to EXPIRED and
// returns the holds transitioned. Bed counts are untouched: holds never
// decremented them, they only constrained the effective-available sum. Safe
// to run repeatedly and concurrently with placement.
func (s *HoldService) ReconcileExpired(ctx context.Context) ([]domain.Hold, error) {
	return s.repo.ExpireHolds(ctx, s.clock.Now())
}
