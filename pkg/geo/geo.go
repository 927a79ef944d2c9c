package geo

import (
	"math"

	"storefront-delivery/internal/models"
)

const earthRadiusKm = 6371

// RoadIndirectionFactor approximates real road travel distance from the
// straight-line distance when no routing provider is reachable.
const RoadIndirectionFactor = 1.2

// Valid reports whether c is inside WGS84 latitude/longitude bounds.
func Valid(c models.Coordinate) bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lng) &&
		c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers. Identical coordinates yield exactly 0.
func HaversineKm(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RoundKm rounds a distance to one decimal place, the precision every
// distance in the system is reported at.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
