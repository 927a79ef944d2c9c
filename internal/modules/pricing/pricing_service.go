package pricing

import (
	"context"
	"math"
	"strconv"
	"sync"

	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
)

// ServiceInterface exposes fee configuration per service line.
type ServiceInterface interface {
	Config(ctx context.Context, service string) (models.FeeConfig, error)
	UpdateConfig(ctx context.Context, service string, cfg models.FeeConfig) (models.FeeConfig, error)
	Reload(ctx context.Context) error
}

// Service reads fee parameters from the settings store and keeps one parsed
// FeeConfig per service line in memory. The cache is read-mostly and replaced
// wholesale on reload, never merged.
type Service struct {
	repo RepositoryInterface
	log  *logger.Logger

	mu      sync.RWMutex
	configs map[string]models.FeeConfig
}

func NewService(repo RepositoryInterface, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log,
		configs: make(map[string]models.FeeConfig),
	}
}

// Fee maps a distance and a fee configuration to the delivery fee. Unknown
// distance (NaN, infinite or negative) conservatively bills the base fee
// only. Beyond the included base distance, billing is stepped: a kilometer is
// charged only once it is fully crossed.
func Fee(distanceKm float64, cfg models.FeeConfig) float64 {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return cfg.BaseFee
	}
	chargeable := distanceKm - cfg.BaseDistanceKm
	if chargeable < 0 {
		chargeable = 0
	}
	return cfg.BaseFee + math.Floor(chargeable)*cfg.PerKmFee
}

// Config returns the fee configuration of a service line, loading and caching
// it on first use. A failing or incomplete settings store degrades to the
// hardcoded defaults rather than blocking quoting.
func (s *Service) Config(ctx context.Context, service string) (models.FeeConfig, error) {
	if !models.ValidServiceLine(service) {
		return models.FeeConfig{}, models.ErrUnknownServiceLine
	}

	s.mu.RLock()
	cfg, ok := s.configs[service]
	s.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	cfg = s.load(ctx, service)
	s.mu.Lock()
	s.configs[service] = cfg
	s.mu.Unlock()
	return cfg, nil
}

// UpdateConfig writes the three fee keys of a service line to the settings
// store and refreshes the cached entry.
func (s *Service) UpdateConfig(ctx context.Context, service string, cfg models.FeeConfig) (models.FeeConfig, error) {
	if !models.ValidServiceLine(service) {
		return models.FeeConfig{}, models.ErrUnknownServiceLine
	}

	pairs := map[string]float64{
		models.BaseFeeKey(service):      cfg.BaseFee,
		models.PerKmFeeKey(service):     cfg.PerKmFee,
		models.BaseDistanceKey(service): cfg.BaseDistanceKm,
	}
	for key, value := range pairs {
		if err := s.repo.UpsertValue(ctx, key, strconv.FormatFloat(value, 'f', -1, 64)); err != nil {
			return models.FeeConfig{}, err
		}
	}

	s.mu.Lock()
	s.configs[service] = cfg
	s.mu.Unlock()

	s.log.WithField("service", service).Info("Fee configuration updated")
	return cfg, nil
}

// Reload re-reads every service line and swaps the whole cache in one step.
func (s *Service) Reload(ctx context.Context) error {
	fresh := make(map[string]models.FeeConfig, len(models.ServiceLines))
	for _, service := range models.ServiceLines {
		fresh[service] = s.load(ctx, service)
	}

	s.mu.Lock()
	s.configs = fresh
	s.mu.Unlock()

	s.log.Info("Fee configuration reloaded")
	return nil
}

// load fetches and parses one service line, substituting the default for any
// key that is absent or unparsable.
func (s *Service) load(ctx context.Context, service string) models.FeeConfig {
	def := models.DefaultFeeConfig(service)

	baseKey := models.BaseFeeKey(service)
	perKmKey := models.PerKmFeeKey(service)
	distKey := models.BaseDistanceKey(service)

	values, err := s.repo.GetValues(ctx, []string{baseKey, perKmKey, distKey})
	if err != nil {
		s.log.WithError(err).WithField("service", service).Warn("Settings read failed, using default fee configuration")
		return def
	}

	return models.FeeConfig{
		BaseFee:        s.parseField(values, baseKey, def.BaseFee),
		PerKmFee:       s.parseField(values, perKmKey, def.PerKmFee),
		BaseDistanceKm: s.parseField(values, distKey, def.BaseDistanceKm),
	}
}

func (s *Service) parseField(values map[string]string, key string, def float64) float64 {
	raw, ok := values[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		s.log.WithField("key", key).WithField("value", raw).Warn("Unparsable fee setting, using default")
		return def
	}
	return v
}
