package geo

// boundingBox is an axis-aligned lat/lon box with an inclusive boundary.
type boundingBox struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
}

// neighborhoods is an ordered table of simplified LA-area boxes. Boxes may
// overlap; the first match wins, so order is significant.
var neighborhoods = []boundingBox{
	{"Skid Row", 34.04, 34.06, -118.26, -118.24},
	{"Koreatown", 34.05, 34.08, -118.32, -118.28},
	{"Hollywood", 34.08, 34.12, -118.36, -118.32},
	{"Venice", 33.98, 34.02, -118.48, -118.44},
	{"South LA", 33.95, 34.05, -118.32, -118.24},
	{"San Fernando Valley", 34.15, 34.25, -118.50, -118.35},
	{"San Pedro/Harbor", 33.70, 33.80, -118.32, -118.28},
	{"Westlake/MacArthur Park", 34.06, 34.08, -118.28, -118.26},
}

// NeighborhoodOther is returned when no box contains the point.
const NeighborhoodOther = "Other"

// ClassifyNeighborhood maps a coordinate to a neighborhood label using the
// first matching box in the fixed table.
func ClassifyNeighborhood(lat, lon float64) string {
	for _, box := range neighborhoods {
		if lat >= box.minLat && lat <= box.maxLat && lon >= box.minLon && lon <= box.maxLon {
			return box.name
		}
	}
	return NeighborhoodOther
}
