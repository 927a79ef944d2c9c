package models

// Coordinate is a WGS84 latitude/longitude pair. Coordinates are transient:
// they are produced by the geocoder or by a map pin on the storefront and are
// recomputed on every request, never persisted.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceResult is the outcome of a road-distance estimation. Estimated is
// true when the routing provider was unavailable and the distance is the
// straight-line approximation inflated by the road-indirection factor.
type DistanceResult struct {
	DistanceKm    float64 `json:"distance_km"`
	DurationLabel string  `json:"duration_label,omitempty"`
	Estimated     bool    `json:"estimated"`
}

// HubLocation is the operational center used as the reference point for
// delivery-area validation. Fixed for the life of the process.
type HubLocation struct {
	Label      string     `json:"label"`
	Coordinate Coordinate `json:"coordinate"`
}

// ErrorResponse is the uniform error body returned by all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
}
