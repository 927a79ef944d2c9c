package quotes

import (
	"context"
	"fmt"
	"strings"

	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
	"storefront-delivery/internal/modules/pricing"
	"storefront-delivery/pkg/geo"

	"github.com/google/uuid"
)

// GeocodingServiceInterface is the slice of the geocoding module this
// pipeline needs.
type GeocodingServiceInterface interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, error)
}

// RoutingServiceInterface estimates road distance between two points.
type RoutingServiceInterface interface {
	EstimateRoadDistance(ctx context.Context, origin, dest models.Coordinate) models.DistanceResult
}

// PricingServiceInterface loads fee configuration per service line.
type PricingServiceInterface interface {
	Config(ctx context.Context, service string) (models.FeeConfig, error)
}

type ServiceInterface interface {
	Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error)
}

// Service is the quote pipeline: resolve both endpoints, estimate the road
// distance, apply the service line's fee formula. Each call is stateless;
// nothing is retained between quotes.
type Service struct {
	geocoder GeocodingServiceInterface
	router   RoutingServiceInterface
	pricing  PricingServiceInterface
	log      *logger.Logger
}

func NewService(geocoder GeocodingServiceInterface, router RoutingServiceInterface, pricingSvc PricingServiceInterface, log *logger.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		router:   router,
		pricing:  pricingSvc,
		log:      log,
	}
}

func (s *Service) Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error) {
	if !models.ValidServiceLine(req.ServiceLine) {
		return nil, models.ErrUnknownServiceLine
	}

	pickup, err := s.resolve(ctx, req.Pickup, req.PickupAddress)
	if err != nil {
		return nil, err
	}
	dropoff, err := s.resolve(ctx, req.Dropoff, req.DropoffAddress)
	if err != nil {
		return nil, err
	}

	distance := s.router.EstimateRoadDistance(ctx, pickup, dropoff)

	cfg, err := s.pricing.Config(ctx, req.ServiceLine)
	if err != nil {
		return nil, fmt.Errorf("quote: load fee config: %w", err)
	}
	fee := pricing.Fee(distance.DistanceKm, cfg)

	s.log.WithField("service", req.ServiceLine).
		WithField("distance_km", distance.DistanceKm).
		WithField("estimated", distance.Estimated).
		WithField("fee", fee).
		Debug("Quote computed")

	return &models.QuoteResponse{
		ID:            uuid.NewString(),
		ServiceLine:   req.ServiceLine,
		Pickup:        pickup,
		Dropoff:       dropoff,
		DistanceKm:    distance.DistanceKm,
		DurationLabel: distance.DurationLabel,
		Estimated:     distance.Estimated,
		Fee:           fee,
		Generation:    req.Generation,
	}, nil
}

// resolve turns one endpoint into a coordinate. An explicit map pin wins over
// the address text; pins are bounds-checked, addresses geocoded.
func (s *Service) resolve(ctx context.Context, pin *models.Coordinate, address string) (models.Coordinate, error) {
	if pin != nil {
		if !geo.Valid(*pin) {
			return models.Coordinate{}, models.ErrInvalidCoordinate
		}
		return *pin, nil
	}
	if strings.TrimSpace(address) == "" {
		return models.Coordinate{}, models.ErrMissingLocation
	}
	return s.geocoder.Geocode(ctx, address)
}
