package app

import (
	"context"
	"time"

	"github.com/shelterlink/api/internal/availability"
	"github.com/shelterlink/api/internal/clock"
	"github.com/shelterlink/api/internal/domain"
)

type StatusRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetStatusForUpdate(ctx context.Context, shelterID string, category domain.Category) (domain.ShelterStatus, error)
	CreateStatus(ctx context.Context, status domain.ShelterStatus) error
	SaveStatus(ctx context.Context, status domain.ShelterStatus) error
	InsertStatusChange(ctx context.Context, change domain.StatusChange) error
}

// Notifier receives the capacity-available signal when a previously full
// category gains beds. Delivery (push, email) is the implementation's
// concern; the core only identifies shelter and category.
type Notifier interface {
	CapacityAvailable(ctx context.Context, shelterID string, category domain.Category)
}

type StatusService struct {
	repo     StatusRepository
	notifier Notifier
	clock    clock.Clock
}

func NewStatusService(repo StatusRepository, notifier Notifier, clk clock.Clock) *StatusService {
	return &StatusService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
	}
}

type UpdateStatusInput struct {
	ShelterID     string
	Category      domain.Category
	BedsTotal     int
	BedsAvailable int
	// Status overrides derivation when set; left empty, it is derived from
	// the bed counts.
	Status  domain.BedStatus
	Notes   string
	StaffID string
}

// UpdateStatus applies a staff-confirmed bed count for one (shelter,
// category) row, creating the row the first time the shelter reports for
// that category. The write, the audit record and the notify decision happen
// against the same locked row; the notify signal itself fires only after
// the transaction commits.
func (s *StatusService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (domain.ShelterStatus, error) {
	if !in.Category.Valid() {
		return domain.ShelterStatus{}, domain.ErrInvalidCategory
	}
	if in.BedsTotal < 0 || in.BedsAvailable < 0 {
		return domain.ShelterStatus{}, domain.ErrNegativeBeds
	}
	if in.BedsAvailable > in.BedsTotal {
		return domain.ShelterStatus{}, domain.ErrBedsExceedTotal
	}
	if in.Status != "" && !in.Status.Valid() {
		return domain.ShelterStatus{}, domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	var result domain.ShelterStatus
	var notify bool

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		prev, err := s.repo.GetStatusForUpdate(txCtx, in.ShelterID, in.Category)
		created := false
		if err == domain.ErrStatusNotFound {
			// First report for this category: treat the prior count as zero.
			prev = domain.ShelterStatus{
				ID:        newID(),
				ShelterID: in.ShelterID,
				Category:  in.Category,
			}
			created = true
		} else if err != nil {
			return err
		}

		next := prev
		next.BedsTotal = in.BedsTotal
		next.BedsAvailable = in.BedsAvailable
		next.Notes = in.Notes
		next.LastUpdated = now
		if in.Status != "" {
			next.Status = in.Status
		} else {
			next.Status = availability.DeriveStatus(in.BedsAvailable, in.BedsTotal)
		}

		if created {
			if err := s.repo.CreateStatus(txCtx, next); err != nil {
				return err
			}
		} else {
			if err := s.repo.SaveStatus(txCtx, next); err != nil {
				return err
			}
		}

		if change := recordIfChanged(in.ShelterID, in.Category, prev.BedsAvailable, next.BedsAvailable, in.StaffID, now); change != nil {
			if err := s.repo.InsertStatusChange(txCtx, *change); err != nil {
				return err
			}
		}

		notify = availability.ShouldNotify(prev, next)
		result = next
		return nil
	})
	if err != nil {
		return domain.ShelterStatus{}, err
	}

	if notify && s.notifier != nil {
		s.notifier.CapacityAvailable(ctx, in.ShelterID, in.Category)
	}
	return result, nil
}

// recordIfChanged builds the audit record for a bed-count mutation, or nil
// when the count did not move. Every accepted mutation produces at most one
// record; hold placement and cancellation never reach this path because they
// never touch BedsAvailable.
func recordIfChanged(shelterID string, category domain.Category, prevAvailable, newAvailable int, staffID string, now time.Time) *domain.StatusChange {
	if prevAvailable == newAvailable {
		return nil
	}
	return &domain.StatusChange{
		ID:            newID(),
		ShelterID:     shelterID,
		Category:      category,
		PrevAvailable: prevAvailable,
		NewAvailable:  newAvailable,
		ChangedBy:     staffID,
		ChangedAt:     now,
	}
}
