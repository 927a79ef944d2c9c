package coverage

import (
	"context"

	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
	"storefront-delivery/internal/modules/geocoding"
	"storefront-delivery/pkg/geo"
)

// ServiceInterface gates checkout: is the destination inside the operational
// radius around the hub?
type ServiceInterface interface {
	Check(ctx context.Context, req models.CoverageRequest) models.CoverageResult
}

// Service geocodes the destination and compares the straight-line distance
// from the hub against the radius. The area gate deliberately uses the
// cheaper great-circle metric, not the road distance the fee is priced on, so
// the two may disagree near the boundary.
type Service struct {
	geocoder geocoding.ServiceInterface
	hub      models.HubLocation
	radiusKm float64
	log      *logger.Logger
}

func NewService(geocoder geocoding.ServiceInterface, hub models.HubLocation, radiusKm float64, log *logger.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		hub:      hub,
		radiusKm: radiusKm,
		log:      log,
	}
}

// Check never fails hard: an address that does not geocode yields a distinct
// "location not found" result rather than "too far".
func (s *Service) Check(ctx context.Context, req models.CoverageRequest) models.CoverageResult {
	radius := req.RadiusKm
	if radius <= 0 {
		radius = s.radiusKm
	}

	coord, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return models.CoverageResult{Within: false, Error: "location not found"}
	}

	distance := geo.RoundKm(geo.HaversineKm(s.hub.Coordinate, coord))
	return models.CoverageResult{
		Within:     distance <= radius,
		DistanceKm: &distance,
	}
}
