package services

import (
	"context"

	"go.uber.org/zap"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/logging"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

// TravelEstimator returns one-way travel minutes between two points.
// Zero means the travel time is unknown, not that the points coincide.
type TravelEstimator interface {
	Minutes(ctx context.Context, from, to domain.Coordinates) int
}

// TravelTimeOracle adapts a point-to-point DistanceProvider into whole-minute
// travel times. Lookup failures degrade to a zero leg and are logged.
type TravelTimeOracle struct {
	provider ports.DistanceProvider
}

func NewTravelTimeOracle(provider ports.DistanceProvider) *TravelTimeOracle {
	return &TravelTimeOracle{provider: provider}
}

// Lookup returns the measured leg and whether the lookup succeeded.
func (o *TravelTimeOracle) Lookup(ctx context.Context, from, to domain.Coordinates) (domain.RouteLeg, bool) {
	r, err := o.provider.GetDistance(ctx, from, to)
	if err != nil {
		logging.L().Warn("travel lookup failed, using 0 minutes",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Error(err),
		)
		return domain.RouteLeg{}, false
	}

	return domain.RouteLeg{
		DistanceKm: float64(r.DistanceMeters) / 1000,
		Minutes:    r.DurationSeconds / 60,
	}, true
}

// Leg returns the measured leg, or a zero leg when the lookup fails.
func (o *TravelTimeOracle) Leg(ctx context.Context, from, to domain.Coordinates) domain.RouteLeg {
	leg, _ := o.Lookup(ctx, from, to)
	return leg
}

// Minutes returns whole travel minutes, truncated, or 0 when the lookup fails.
func (o *TravelTimeOracle) Minutes(ctx context.Context, from, to domain.Coordinates) int {
	return o.Leg(ctx, from, to).Minutes
}
