package distance

import (
	"context"
	"fmt"
	"sync"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/geo"
	"visit-route-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockDirectionsProvider answers from a fixed pair table. Routes are built
// from the same table and carry a polyline through the requested stops.
type MockDirectionsProvider struct {
	m map[string]ports.DistanceResult

	// Used for pairs missing from the table when set.
	Fallback *ports.DistanceResult
	// Returned by every Route call when set.
	RouteErr error
	// Returned by every GetDistance call when set.
	DistanceErr error
	// Overrides the waypoint order reported by Route.
	WaypointOrder []int

	mu            sync.Mutex
	distanceCalls int
	routeCalls    []ports.RouteRequest
}

func pairKey(from, to domain.Coordinates) string {
	return from.String() + "|" + to.String()
}

func NewMockDirectionsProvider(pairs []MockPair) *MockDirectionsProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDirectionsProvider{m: m}
}

// NewConstantDirectionsProvider answers every pair with the same result.
func NewConstantDirectionsProvider(meters, seconds int) *MockDirectionsProvider {
	p := NewMockDirectionsProvider(nil)
	p.Fallback = &ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}
	return p
}

func (p *MockDirectionsProvider) lookup(origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	r, ok := p.m[pairKey(origin, destination)]
	if ok {
		return r, nil
	}
	if p.Fallback != nil {
		return *p.Fallback, nil
	}
	return ports.DistanceResult{}, fmt.Errorf("missing pair %s -> %s", origin, destination)
}

func (p *MockDirectionsProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	p.mu.Lock()
	p.distanceCalls++
	p.mu.Unlock()

	if p.DistanceErr != nil {
		return ports.DistanceResult{}, p.DistanceErr
	}
	return p.lookup(origin, destination)
}

func (p *MockDirectionsProvider) Route(ctx context.Context, req ports.RouteRequest) (ports.RouteResult, error) {
	p.mu.Lock()
	p.routeCalls = append(p.routeCalls, req)
	p.mu.Unlock()

	if p.RouteErr != nil {
		return ports.RouteResult{}, p.RouteErr
	}

	stops := make([]domain.Coordinates, 0, len(req.Waypoints)+2)
	stops = append(stops, req.Origin)
	stops = append(stops, req.Waypoints...)
	stops = append(stops, req.Destination)

	legs := make([]ports.DistanceResult, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		r, err := p.lookup(stops[i-1], stops[i])
		if err != nil {
			return ports.RouteResult{}, err
		}
		legs = append(legs, r)
	}

	order := p.WaypointOrder
	if order == nil {
		order = make([]int, len(req.Waypoints))
		for i := range order {
			order[i] = i
		}
	}

	return ports.RouteResult{
		Polyline:      geo.EncodePath(stops),
		Legs:          legs,
		WaypointOrder: order,
	}, nil
}

// DistanceCalls reports how many point-to-point lookups were made.
func (p *MockDirectionsProvider) DistanceCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distanceCalls
}

// RouteCalls returns a copy of the route requests received.
func (p *MockDirectionsProvider) RouteCalls() []ports.RouteRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.RouteRequest(nil), p.routeCalls...)
}
