package routing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"storefront-delivery/internal/logger"
	"storefront-delivery/internal/models"
	"storefront-delivery/pkg/geo"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestService(rt roundTripFunc) *Service {
	return &Service{
		baseURL:    "https://osrm.test",
		httpClient: &http.Client{Transport: rt},
		log:        logger.NewNop(),
	}
}

var (
	hub  = models.Coordinate{Lat: 14.9746, Lng: 120.5282}
	dest = models.Coordinate{Lat: 14.9800, Lng: 120.5400}
)

func TestEstimateRoadDistanceFromRouter(t *testing.T) {
	var gotPath string
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		body := `{"code":"Ok","routes":[{"distance":5230,"duration":744},{"distance":4980,"duration":912}]}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{},
		}, nil
	})

	res := svc.EstimateRoadDistance(context.Background(), hub, dest)
	// Shortest route wins: 4980 m -> 5.0 km.
	if res.DistanceKm != 5.0 {
		t.Errorf("DistanceKm = %f; want 5.0", res.DistanceKm)
	}
	if res.Estimated {
		t.Error("Estimated = true for a successful routing response")
	}
	if res.DurationLabel != "15 min" {
		t.Errorf("DurationLabel = %q; want \"15 min\"", res.DurationLabel)
	}
	// Waypoints are lng,lat pairs under the driving profile.
	if !strings.HasPrefix(gotPath, "/route/v1/driving/120.5282,14.9746;120.54,14.98") {
		t.Errorf("request path = %q; want lng,lat;lng,lat waypoints", gotPath)
	}
}

func TestEstimateRoadDistanceFallsBackOnNetworkFailure(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	res := svc.EstimateRoadDistance(context.Background(), hub, dest)
	want := geo.RoundKm(geo.HaversineKm(hub, dest) * geo.RoadIndirectionFactor)
	if res.DistanceKm != want {
		t.Errorf("fallback DistanceKm = %f; want %f (1.2 x haversine, 1dp)", res.DistanceKm, want)
	}
	if !res.Estimated {
		t.Error("Estimated = false on the fallback path")
	}
	if res.DurationLabel != "" {
		t.Errorf("DurationLabel = %q on the fallback path; want empty", res.DurationLabel)
	}
}

func TestEstimateRoadDistanceFallsBackOnBadEnvelope(t *testing.T) {
	bodies := []string{
		`{"code":"NoRoute","routes":[]}`,
		`{"code":"Ok","routes":[]}`,
		`{not json`,
	}
	for _, body := range bodies {
		svc := newTestService(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     http.Header{},
			}, nil
		})
		res := svc.EstimateRoadDistance(context.Background(), hub, dest)
		if !res.Estimated {
			t.Errorf("body %q: Estimated = false; want fallback", body)
		}
	}
}

func TestEstimateRoadDistanceIdenticalCoordinates(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("unreachable")
	})

	res := svc.EstimateRoadDistance(context.Background(), hub, hub)
	if res.DistanceKm != 0 {
		t.Errorf("DistanceKm = %f for identical coordinates; want 0", res.DistanceKm)
	}
}

func TestDurationLabel(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{10, "1 min"},
		{90, "2 min"},
		{744, "12 min"},
		{3900, "1h 05m"},
	}
	for _, tc := range cases {
		if got := durationLabel(tc.seconds); got != tc.want {
			t.Errorf("durationLabel(%f) = %q; want %q", tc.seconds, got, tc.want)
		}
	}
}
