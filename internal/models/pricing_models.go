package models

import "fmt"

// Service lines with independently configured fee parameters.
const (
	ServiceFood   = "food"
	ServiceParcel = "parcel"
	ServiceErrand = "errand"
)

// ServiceLines lists every known service line in a stable order.
var ServiceLines = []string{ServiceFood, ServiceParcel, ServiceErrand}

// ValidServiceLine reports whether s names a known service line.
func ValidServiceLine(s string) bool {
	switch s {
	case ServiceFood, ServiceParcel, ServiceErrand:
		return true
	}
	return false
}

// FeeConfig holds the fee parameters of one service line. Values come from
// the settings table and are replaced wholesale on reload.
type FeeConfig struct {
	BaseFee        float64 `json:"base_fee" validate:"gte=0"`
	PerKmFee       float64 `json:"per_km_fee" validate:"gte=0"`
	BaseDistanceKm float64 `json:"base_distance_km" validate:"gte=0"`
}

// DefaultFeeConfig returns the hardcoded fallback used when settings keys are
// absent or unparsable. Food includes 3 km in the base fee; parcel and errand
// bill from the first kilometer.
func DefaultFeeConfig(service string) FeeConfig {
	cfg := FeeConfig{BaseFee: 60, PerKmFee: 13}
	if service == ServiceFood {
		cfg.BaseDistanceKm = 3
	}
	return cfg
}

// Settings keys read by the fee configuration store, one triple per service
// line, e.g. "food_base_fee". Values are stored as text and parsed as floats.
func BaseFeeKey(service string) string      { return fmt.Sprintf("%s_base_fee", service) }
func PerKmFeeKey(service string) string     { return fmt.Sprintf("%s_per_km_fee", service) }
func BaseDistanceKey(service string) string { return fmt.Sprintf("%s_base_distance", service) }
