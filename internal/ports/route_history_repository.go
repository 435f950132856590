package ports

import (
	"context"
	"visit-route-service/internal/domain"
)

// Port: a boundary for storing and reading generated itineraries.
type RouteHistoryRepository interface {
	// Store the route summary and its stop rows; returns the new route id.
	SaveRoute(ctx context.Context, rec domain.RouteRecord) (int64, error)
	// Retrieve the analyst's routes, newest first.
	ListRoutes(ctx context.Context, analystID int) ([]domain.RouteRecord, error)
}
