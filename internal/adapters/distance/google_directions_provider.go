package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

// ErrNoRoutes is returned when the oracle answers without any route.
var ErrNoRoutes = errors.New("directions response has no routes")

// GoogleDirectionsProvider implements DirectionsProvider using the Google
// Maps Directions API.
//
// Every call goes to the network: there is no retry and no caching. The
// provider is safe for concurrent use.
type GoogleDirectionsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGoogleDirectionsProvider(apiKey, baseURL string) (*GoogleDirectionsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("directions api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	provider := &GoogleDirectionsProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	return provider, nil
}

// GetDistance resolves a single origin -> destination leg.
func (g *GoogleDirectionsProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "directions.GetDistance")(&err)
	defer func() { obs.CountOracleCall(obs.CallDistance, err) }()

	res, err := g.fetch(ctx, ports.RouteRequest{Origin: origin, Destination: destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance %s -> %s: %w", origin, destination, err)
	}

	if len(res.Legs) == 0 {
		return ports.DistanceResult{}, fmt.Errorf("get distance %s -> %s: route has no legs", origin, destination)
	}

	return res.Legs[0], nil
}

// Route resolves origin -> waypoints -> destination, keeping the waypoint order.
func (g *GoogleDirectionsProvider) Route(
	ctx context.Context,
	req ports.RouteRequest,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "directions.Route")(&err)
	defer func() { obs.CountOracleCall(obs.CallRoute, err) }()

	res, err := g.fetch(ctx, req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route with %d waypoints: %w", len(req.Waypoints), err)
	}

	return res, nil
}

func (g *GoogleDirectionsProvider) fetch(ctx context.Context, rr ports.RouteRequest) (ports.RouteResult, error) {
	req, err := g.newRequest(ctx, http.MethodGet, g.baseURL+"/maps/api/directions/json", nil)
	if err != nil {
		return ports.RouteResult{}, err
	}

	q := req.URL.Query()
	q.Set("origin", rr.Origin.String())
	q.Set("destination", rr.Destination.String())
	if w := waypointsParam(rr.Waypoints); w != "" {
		q.Set("waypoints", w)
	}
	q.Set("key", g.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := g.do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	return decodeDirections(resp.Body)
}

// waypointsParam renders the pipe-delimited waypoint list with optimization off.
func waypointsParam(points []domain.Coordinates) string {
	if len(points) == 0 {
		return ""
	}

	parts := make([]string, 0, len(points)+1)
	parts = append(parts, "optimize:false")
	for _, p := range points {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "|")
}
