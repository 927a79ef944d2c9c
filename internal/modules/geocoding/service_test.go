package geocoding

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

// newTestService wires a Service straight onto a mock transport; no cache,
// no rate window.
func newTestService(rt roundTripFunc, withGoogle bool) *Service {
	client := &http.Client{Transport: rt}
	s := &Service{
		nominatim: &nominatimProvider{
			baseURL:     "https://nominatim.test",
			userAgent:   "storefront-delivery-test",
			httpClient:  client,
			windowLimit: 60,
			window:      time.Minute,
		},
		log: logger.NewNop(),
	}
	if withGoogle {
		s.google = &googleProvider{
			baseURL:    "https://google.test",
			apiKey:     "test-key",
			httpClient: client,
		}
	}
	return s
}

func TestGeocodeEmptyAddressSkipsNetwork(t *testing.T) {
	calls := 0
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(`[]`), nil
	}, true)

	_, err := svc.Geocode(context.Background(), "   ")
	if !errors.Is(err, models.ErrAddressNotFound) {
		t.Fatalf("Geocode(blank) error = %v; want ErrAddressNotFound", err)
	}
	if calls != 0 {
		t.Errorf("blank address made %d network calls; want 0", calls)
	}
}

func TestGeocodeGoogleFirstVariantHit(t *testing.T) {
	var queries []string
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "google.test" {
			t.Errorf("unexpected host %s before google resolved", req.URL.Host)
		}
		queries = append(queries, req.URL.Query().Get("address"))
		return jsonResponse(`{"status":"OK","results":[{"geometry":{"location":{"lat":14.98,"lng":120.54}}}]}`), nil
	}, true)

	coord, err := svc.Geocode(context.Background(), "Brgy. Cabambangan")
	if err != nil {
		t.Fatalf("Geocode error: %v", err)
	}
	if coord.Lat != 14.98 || coord.Lng != 120.54 {
		t.Errorf("coord = %+v; want (14.98, 120.54)", coord)
	}
	if len(queries) != 1 {
		t.Fatalf("made %d google calls; want 1", len(queries))
	}
	if queries[0] != "barangay Cabambangan" {
		t.Errorf("query = %q; want normalized address", queries[0])
	}
}

func TestGeocodeFallsBackToNominatim(t *testing.T) {
	var googleQueries, nominatimQueries []string
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Host {
		case "google.test":
			googleQueries = append(googleQueries, req.URL.Query().Get("address"))
			return jsonResponse(`{"status":"ZERO_RESULTS","results":[]}`), nil
		case "nominatim.test":
			if ua := req.Header.Get("User-Agent"); ua != "storefront-delivery-test" {
				t.Errorf("nominatim User-Agent = %q; want client identification", ua)
			}
			if cc := req.URL.Query().Get("countrycodes"); cc != "ph" {
				t.Errorf("nominatim countrycodes = %q; want ph", cc)
			}
			q := req.URL.Query().Get("q")
			nominatimQueries = append(nominatimQueries, q)
			if strings.HasSuffix(q, ", Philippines") {
				return jsonResponse(`[{"lat":"14.9800","lon":"120.5400"}]`), nil
			}
			return jsonResponse(`[]`), nil
		}
		t.Fatalf("unexpected host %s", req.URL.Host)
		return nil, nil
	}, true)

	coord, err := svc.Geocode(context.Background(), "Cabambangan")
	if err != nil {
		t.Fatalf("Geocode error: %v", err)
	}
	if coord.Lat != 14.98 || coord.Lng != 120.54 {
		t.Errorf("coord = %+v; want (14.98, 120.54)", coord)
	}
	// Provider A exhausts all three variants before provider B starts.
	if len(googleQueries) != 3 {
		t.Errorf("google tried %d variants; want 3", len(googleQueries))
	}
	// Provider B stops at the variant that resolves (raw, then +country).
	if len(nominatimQueries) != 2 {
		t.Errorf("nominatim tried %d variants; want 2", len(nominatimQueries))
	}
	wantVariants := []string{"Cabambangan", "Cabambangan, Philippines", "Cabambangan, Pampanga, Philippines"}
	for i, q := range googleQueries {
		if q != wantVariants[i] {
			t.Errorf("google variant %d = %q; want %q", i, q, wantVariants[i])
		}
	}
}

func TestGeocodeWithoutKeySkipsGoogle(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "nominatim.test" {
			t.Errorf("call to %s; want nominatim only when no key configured", req.URL.Host)
		}
		return jsonResponse(`[{"lat":"14.9746","lon":"120.5282"}]`), nil
	}, false)

	if _, err := svc.Geocode(context.Background(), "bacolor plaza"); err != nil {
		t.Fatalf("Geocode error: %v", err)
	}
}

func TestGeocodeAllProvidersFail(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}, true)

	_, err := svc.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, models.ErrAddressNotFound) {
		t.Fatalf("Geocode error = %v; want ErrAddressNotFound", err)
	}
}

func TestGeocodeMalformedNominatimPayload(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`[{"lat":"not-a-number","lon":"120.54"}]`), nil
	}, false)

	_, err := svc.Geocode(context.Background(), "bacolor")
	if !errors.Is(err, models.ErrAddressNotFound) {
		t.Fatalf("Geocode error = %v; want ErrAddressNotFound", err)
	}
}
