package models

import "errors"

// ErrAddressNotFound is the terminal geocoding outcome: the address did not
// resolve after every variant and provider was tried. Callers must treat it
// as a legitimate result, not a retryable fault.
var ErrAddressNotFound = errors.New("could not find address")

var ErrProviderUnavailable = errors.New("provider unavailable")
var ErrInvalidCoordinate = errors.New("coordinate out of range")
var ErrMissingLocation = errors.New("an address or a coordinate is required")
var ErrUnknownServiceLine = errors.New("unknown service line")
// Add other common domain errors
