package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront-delivery/internal/cache"
	"storefront-delivery/internal/models"
)

// provider is one link of the geocoding chain. lookup returns found=false
// for an ordinary "no result" so the chain can move on to the next variant;
// errors mean the attempt itself failed (transport, parse, rate window).
type provider interface {
	name() string
	lookup(ctx context.Context, query string) (coord models.Coordinate, found bool, err error)
}

// googleProvider is the keyed provider. It is only part of the chain when an
// API key is configured.
type googleProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func (p *googleProvider) name() string { return "google" }

func (p *googleProvider) lookup(ctx context.Context, query string) (models.Coordinate, bool, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/maps/api/geocode/json?"+params.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, false, fmt.Errorf("google geocode: status %d: %w", resp.StatusCode, models.ErrProviderUnavailable)
	}

	var out struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coordinate{}, false, err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return models.Coordinate{}, false, nil
	}
	loc := out.Results[0].Geometry.Location
	return models.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}

// nominatimProvider is the keyless fallback. The provider's usage policy
// requires a client-identifying User-Agent and a modest request rate, so a
// fixed window counter in Redis guards it when Redis is configured. Results
// are restricted to one country.
type nominatimProvider struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	limiter     *cache.Client
	windowLimit int
	window      time.Duration
}

func (p *nominatimProvider) name() string { return "nominatim" }

func (p *nominatimProvider) lookup(ctx context.Context, query string) (models.Coordinate, bool, error) {
	allowed, err := p.limiter.Allow(ctx, "geocode:nominatim:window", p.windowLimit, p.window)
	if err == nil && !allowed {
		return models.Coordinate{}, false, fmt.Errorf("nominatim rate window exceeded: %w", models.ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "ph")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, false, fmt.Errorf("nominatim: status %d: %w", resp.StatusCode, models.ErrProviderUnavailable)
	}

	var out []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coordinate{}, false, err
	}
	if len(out) == 0 {
		return models.Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(out[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, false, fmt.Errorf("nominatim: bad lat %q: %w", out[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(out[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, false, fmt.Errorf("nominatim: bad lon %q: %w", out[0].Lon, err)
	}
	return models.Coordinate{Lat: lat, Lng: lng}, true, nil
}
