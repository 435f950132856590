package ports

import (
	"context"
	"visit-route-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between locations.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two coordinates.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
