package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"storefront-delivery/internal/config"
	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
	"storefront-delivery/pkg/geo"
)

// ServiceInterface estimates the driving distance between two coordinates.
type ServiceInterface interface {
	EstimateRoadDistance(ctx context.Context, origin, dest models.Coordinate) models.DistanceResult
}

// Service asks OSRM for a driving route and degrades to an inflated
// great-circle estimate when the router cannot answer. It never fails: there
// is always a distance to price against.
type Service struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewService(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		baseURL:    cfg.OSRMBaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second},
		log:        log,
	}
}

func (s *Service) EstimateRoadDistance(ctx context.Context, origin, dest models.Coordinate) models.DistanceResult {
	result, err := s.requestRoute(ctx, origin, dest)
	if err != nil {
		s.log.WithError(err).Debug("routing provider unavailable, using straight-line estimate")
		return Fallback(origin, dest)
	}
	return result
}

// requestRoute queries the OSRM driving profile. Waypoints are lng,lat pairs;
// distance comes back in meters and duration in seconds. The shortest of the
// returned routes wins.
func (s *Service) requestRoute(ctx context.Context, origin, dest models.Coordinate) (models.DistanceResult, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=false&alternatives=true",
		s.baseURL,
		formatCoord(origin.Lng), formatCoord(origin.Lat),
		formatCoord(dest.Lng), formatCoord(dest.Lat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.DistanceResult{}, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.DistanceResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.DistanceResult{}, fmt.Errorf("osrm: status %d: %w", resp.StatusCode, models.ErrProviderUnavailable)
	}

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.DistanceResult{}, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return models.DistanceResult{}, fmt.Errorf("osrm: code %q, %d routes: %w", out.Code, len(out.Routes), models.ErrProviderUnavailable)
	}

	best := out.Routes[0]
	for _, r := range out.Routes[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}

	km := geo.RoundKm(best.Distance / 1000)
	if math.IsNaN(km) || km < 0 {
		return models.DistanceResult{}, fmt.Errorf("osrm: degenerate distance %f: %w", best.Distance, models.ErrProviderUnavailable)
	}
	return models.DistanceResult{
		DistanceKm:    km,
		DurationLabel: durationLabel(best.Duration),
	}, nil
}

// Fallback is the straight-line approximation: haversine distance inflated by
// the road-indirection factor, rounded to one decimal. Duration is unknown on
// this path and stays empty.
func Fallback(origin, dest models.Coordinate) models.DistanceResult {
	km := geo.RoundKm(geo.HaversineKm(origin, dest) * geo.RoadIndirectionFactor)
	return models.DistanceResult{DistanceKm: km, Estimated: true}
}

func durationLabel(seconds float64) string {
	mins := int(math.Round(seconds / 60))
	if mins < 1 {
		mins = 1
	}
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
