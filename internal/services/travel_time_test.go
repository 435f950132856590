package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"visit-route-service/internal/adapters/distance"
	"visit-route-service/internal/domain"
)

func TestTravelTimeOracleTruncatesToMinutes(t *testing.T) {
	a := domain.Coordinates{Lat: -5.1, Lon: -80.1}
	b := domain.Coordinates{Lat: -5.2, Lon: -80.2}
	provider := distance.NewMockDirectionsProvider([]distance.MockPair{
		{From: a, To: b, Meters: 12500, Seconds: 719},
	})
	oracle := NewTravelTimeOracle(provider)

	assert.Equal(t, 11, oracle.Minutes(context.Background(), a, b))

	leg, ok := oracle.Lookup(context.Background(), a, b)
	assert.True(t, ok)
	assert.Equal(t, domain.RouteLeg{DistanceKm: 12.5, Minutes: 11}, leg)
}

func TestTravelTimeOracleDegradesToZero(t *testing.T) {
	provider := distance.NewConstantDirectionsProvider(1000, 600)
	provider.DistanceErr = errors.New("status 503")
	oracle := NewTravelTimeOracle(provider)

	a := domain.Coordinates{Lat: 1, Lon: 1}
	assert.Equal(t, 0, oracle.Minutes(context.Background(), a, testOrigin))
	assert.Equal(t, domain.RouteLeg{}, oracle.Leg(context.Background(), a, testOrigin))

	_, ok := oracle.Lookup(context.Background(), a, testOrigin)
	assert.False(t, ok)
	assert.Equal(t, 3, provider.DistanceCalls(), "failures are not remembered")
}
