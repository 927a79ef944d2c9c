package geocoding

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront-delivery/internal/cache"
	"storefront-delivery/internal/config"
	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
)

// ServiceInterface resolves a free-text address to a coordinate.
type ServiceInterface interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, error)
}

// Service runs the provider chain: normalize once, then try each provider
// with up to three address variants, taking the first hit. A resolved
// coordinate may be cached in Redis keyed by the normalized address.
type Service struct {
	google    *googleProvider // nil when no API key is configured
	nominatim *nominatimProvider
	cache     *cache.Client
	cacheTTL  time.Duration
	log       *logger.Logger
}

func NewService(cfg *config.Config, cacheClient *cache.Client, log *logger.Logger) *Service {
	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}

	s := &Service{
		nominatim: &nominatimProvider{
			baseURL:     cfg.NominatimBaseURL,
			userAgent:   cfg.NominatimUserAgent,
			httpClient:  httpClient,
			limiter:     cacheClient,
			windowLimit: cfg.NominatimWindowLimit,
			window:      time.Duration(cfg.NominatimWindowSeconds) * time.Second,
		},
		cache:    cacheClient,
		cacheTTL: time.Duration(cfg.GeocodeCacheTTLSeconds) * time.Second,
		log:      log,
	}
	if cfg.GoogleGeocodingAPIKey != "" {
		s.google = &googleProvider{
			baseURL:    "https://maps.googleapis.com",
			apiKey:     cfg.GoogleGeocodingAPIKey,
			httpClient: httpClient,
		}
	}
	return s
}

// variants returns the queries tried per provider, most specific input first:
// the normalized string as typed, then with a country suffix, then with the
// regional suffix.
func variants(normalized string) []string {
	return []string{
		normalized,
		normalized + ", Philippines",
		normalized + ", Pampanga, Philippines",
	}
}

func (s *Service) chain() []provider {
	var out []provider
	if s.google != nil {
		out = append(out, s.google)
	}
	out = append(out, s.nominatim)
	return out
}

// Geocode resolves address into a coordinate, or models.ErrAddressNotFound
// when every variant of every provider comes back empty. An empty address is
// answered without any network call. Provider failures are swallowed: a
// broken provider looks the same as one with no result.
func (s *Service) Geocode(ctx context.Context, address string) (models.Coordinate, error) {
	if strings.TrimSpace(address) == "" {
		return models.Coordinate{}, models.ErrAddressNotFound
	}
	normalized := Normalize(address)
	cacheKey := "geocode:" + normalized

	var cached models.Coordinate
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.log.WithError(err).Debug("geocode cache read failed")
	} else if hit {
		return cached, nil
	}

	for _, p := range s.chain() {
		for _, query := range variants(normalized) {
			coord, found, err := p.lookup(ctx, query)
			if err != nil {
				s.log.WithError(err).WithField("provider", p.name()).Debug("geocode attempt failed")
				continue
			}
			if !found {
				continue
			}
			if err := s.cache.Set(ctx, cacheKey, coord, s.cacheTTL); err != nil {
				s.log.WithError(err).Debug("geocode cache write failed")
			}
			return coord, nil
		}
	}
	return models.Coordinate{}, models.ErrAddressNotFound
}
