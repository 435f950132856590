package ports

import (
	"context"
	"visit-route-service/internal/domain"
)

// A multi-stop route request. Waypoints are visited in the given order.
type RouteRequest struct {
	Origin      domain.Coordinates
	Destination domain.Coordinates
	Waypoints   []domain.Coordinates
}

// A route as returned by the directions oracle.
type RouteResult struct {
	// Encoded overview polyline.
	Polyline string
	// One leg per consecutive pair of stops.
	Legs []DistanceResult
	// Oracle-chosen visiting order of the waypoints, as indexes into RouteRequest.Waypoints.
	WaypointOrder []int
}

// Extension of DistanceProvider that also computes full multi-stop routes.
type DirectionsProvider interface {
	DistanceProvider
	// Return the route origin -> waypoints... -> destination.
	Route(ctx context.Context, req RouteRequest) (RouteResult, error)
}
