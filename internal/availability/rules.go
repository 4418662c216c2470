// Package availability holds the pure rules that decide what a shelter's
// reported bed counts mean at a given instant.
package availability

import (
	"time"

	"github.com/shelterlink/api/internal/domain"
)

// ConservatismWindow is how long a human-confirmed OPEN or LIMITED status is
// trusted before it decays to UNKNOWN.
const ConservatismWindow = 12 * time.Hour

// ApplyConservatism returns the status projected through the staleness rule:
// a row last confirmed more than ConservatismWindow before now is downgraded
// from OPEN or LIMITED to UNKNOWN. LastUpdated is never rewritten, so the
// original confirmation time stays visible. This is a read-time projection;
// callers apply it on every read and never persist the result.
func ApplyConservatism(status domain.ShelterStatus, now time.Time) domain.ShelterStatus {
	if status.LastUpdated.IsZero() {
		return status
	}
	if now.Sub(status.LastUpdated) <= ConservatismWindow {
		return status
	}
	if status.Status == domain.BedStatusOpen || status.Status == domain.BedStatusLimited {
		status.Status = domain.BedStatusUnknown
	}
	return status
}

// Percentage returns available beds as a percentage of total. A row with no
// beds at all reports 0.0 rather than dividing by zero.
func Percentage(status domain.ShelterStatus) float64 {
	if status.BedsTotal == 0 {
		return 0.0
	}
	return float64(status.BedsAvailable) / float64(status.BedsTotal) * 100
}

// DeriveStatus maps raw bed counts to a status for staff updates that omit
// an explicit one: no beds is FULL, a quarter or less is LIMITED, otherwise
// OPEN.
func DeriveStatus(bedsAvailable, bedsTotal int) domain.BedStatus {
	if bedsAvailable == 0 {
		return domain.BedStatusFull
	}
	if float64(bedsAvailable) <= float64(bedsTotal)*0.25 {
		return domain.BedStatusLimited
	}
	return domain.BedStatusOpen
}

// ShouldNotify reports whether a status mutation should alert subscribers:
// true only when a previously full category gained beds and the new state is
// OPEN or LIMITED. Evaluated once per accepted mutation, never retroactively.
func ShouldNotify(prev, next domain.ShelterStatus) bool {
	return prev.BedsAvailable == 0 &&
		next.BedsAvailable > 0 &&
		(next.Status == domain.BedStatusOpen || next.Status == domain.BedStatusLimited)
}
