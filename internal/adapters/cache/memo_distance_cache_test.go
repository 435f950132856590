package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	p.calls++
	if p.err != nil {
		return ports.DistanceResult{}, p.err
	}
	return ports.DistanceResult{DistanceMeters: 1000, DurationSeconds: 120}, nil
}

func TestMemoDistanceProviderDeduplicates(t *testing.T) {
	next := &countingProvider{}
	cache := NewMemoDistanceCache()
	p := NewMemoDistanceProvider(next, cache)

	a := domain.Coordinates{Lat: -5.1, Lon: -80.5}
	b := domain.Coordinates{Lat: -5.2, Lon: -80.4}
	// differs below the key precision
	aNear := domain.Coordinates{Lat: -5.100000001, Lon: -80.5}

	for _, from := range []domain.Coordinates{a, aNear, a} {
		r, err := p.GetDistance(context.Background(), from, b)
		require.NoError(t, err)
		assert.Equal(t, 120, r.DurationSeconds)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 2, cache.Hits())
	assert.Equal(t, 2, p.Hits())

	// direction matters
	_, err := p.GetDistance(context.Background(), b, a)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestMemoDistanceProviderDoesNotRememberFailures(t *testing.T) {
	next := &countingProvider{err: errors.New("unavailable")}
	p := NewMemoDistanceProvider(next, nil)

	a := domain.Coordinates{Lat: 1, Lon: 1}
	b := domain.Coordinates{Lat: 2, Lon: 2}

	_, err := p.GetDistance(context.Background(), a, b)
	assert.Error(t, err)
	_, err = p.GetDistance(context.Background(), a, b)
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
