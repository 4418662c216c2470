// Package geo provides great-circle distance math and coordinate-based
// neighborhood classification. All functions are pure; callers validate
// coordinate ranges.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean radius of the spherical Earth model.
const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * earthRadiusKm
}

// WithinRadius reports whether the two points are at most radiusKm apart.
func WithinRadius(lat1, lon1, lat2, lon2, radiusKm float64) bool {
	return Distance(lat1, lon1, lat2, lon2) <= radiusKm
}

// FormatDistance renders a distance for display: meters below 1 km, one
// decimal below 10 km, whole kilometers above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(km*1000))
	}
	if km < 10 {
		return fmt.Sprintf("%.1fkm", km)
	}
	return fmt.Sprintf("%dkm", int(km))
}
