package models

// QuoteRequest is the input from the storefront to price a delivery. Each
// endpoint may be supplied as a free-text address or as an explicit map-pin
// coordinate; when both are present the coordinate wins.
type QuoteRequest struct {
	ServiceLine    string      `json:"service_line" validate:"required,oneof=food parcel errand"`
	PickupAddress  string      `json:"pickup_address,omitempty"`
	Pickup         *Coordinate `json:"pickup,omitempty"`
	DropoffAddress string      `json:"dropoff_address,omitempty"`
	Dropoff        *Coordinate `json:"dropoff,omitempty"`
	// Generation is an opaque per-input-field counter supplied by the client
	// and echoed back, so the storefront can discard quote responses that a
	// newer keystroke has superseded.
	Generation int64 `json:"generation,omitempty"`
}

// QuoteResponse carries the priced delivery back to the storefront.
type QuoteResponse struct {
	ID            string     `json:"id"`
	ServiceLine   string     `json:"service_line"`
	Pickup        Coordinate `json:"pickup"`
	Dropoff       Coordinate `json:"dropoff"`
	DistanceKm    float64    `json:"distance_km"`
	DurationLabel string     `json:"duration_label,omitempty"`
	Estimated     bool       `json:"estimated"`
	Fee           float64    `json:"fee"`
	Generation    int64      `json:"generation,omitempty"`
}

// CoverageRequest asks whether a destination is inside the delivery area.
type CoverageRequest struct {
	Address  string  `json:"address" validate:"required"`
	RadiusKm float64 `json:"radius_km,omitempty" validate:"gte=0"`
}

// CoverageResult is the delivery-area gate outcome. A missing DistanceKm
// together with a non-empty Error means the address did not geocode, which is
// distinct from "too far".
type CoverageResult struct {
	Within     bool     `json:"within"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Error      string   `json:"error,omitempty"`
}
