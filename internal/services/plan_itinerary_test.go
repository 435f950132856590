package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/adapters/cache"
	"visit-route-service/internal/adapters/distance"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/geo"
)

func plannerConfig() PlannerConfig {
	return PlannerConfig{
		DayBudgetMinutes: 540,
		Origin:           testOrigin,
		OriginName:       "Field office",
		RouteNote:        "generated",
	}
}

func storeWithSelection(analystID int, sites []domain.Site) *fakeStore {
	store := newFakeStore(sites...)
	store.selections[analystID] = sites
	return store
}

func TestPlanItineraryStoresRoute(t *testing.T) {
	sites := under12Sites(10, 20, 30, 40, 50)
	store := storeWithSelection(7, sites)
	provider := distance.NewConstantDirectionsProvider(50000, 3600)
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	res, err := PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 7, Now: now},
		store, store, store, provider)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.RouteID)
	it := res.Itinerary
	require.Len(t, it.Days, 3)
	assert.Equal(t, "E", it.OrderedSites[0].Code, "waypoints are sent by priority")
	assert.Equal(t, "Field office", it.OriginName)

	require.Len(t, store.routes, 1)
	rec := store.routes[0]
	assert.Equal(t, 7, rec.AnalystID)
	assert.Equal(t, now, rec.GeneratedAt)
	assert.Equal(t, "generated", rec.Note)
	assert.InDelta(t, 360.0, rec.DurationMin, 1e-9)
	assert.InDelta(t, 300.0, rec.DistanceKm, 1e-9)
	assert.InDelta(t, it.TotalPriority(), rec.TotalPriority, 1e-12)

	require.Len(t, rec.Stops, 5)
	first, second := rec.Stops[0], rec.Stops[1]
	assert.Equal(t, "E", first.SiteCode)
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, 1, first.VisitOrder)
	assert.Zero(t, first.DistanceKm)
	assert.Equal(t, 540.0, first.EstimatedMinutes)

	assert.Equal(t, "D", second.SiteCode)
	assert.Equal(t, 2, second.VisitOrder)
	assert.InDelta(t, geo.DistanceKm(sites[4].Coords, sites[3].Coords), second.DistanceKm, 1e-9)
	assert.Equal(t, 3, rec.Stops[4].DayNumber)
}

func TestPlanItineraryFullRouteFailureStoresNothing(t *testing.T) {
	store := storeWithSelection(7, under12Sites(10, 20, 30))
	provider := distance.NewConstantDirectionsProvider(50000, 3600)
	provider.RouteErr = distance.ErrNoRoutes

	_, err := PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 7},
		store, store, store, provider)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalService))
	assert.Zero(t, store.saveCalls)
	assert.Empty(t, store.routes)
}

func TestPlanItineraryDayRouteFailureStoresNothing(t *testing.T) {
	store := storeWithSelection(7, under12Sites(10, 20, 30, 40, 50))
	flaky := &flakyRoutes{MockDirectionsProvider: distance.NewConstantDirectionsProvider(50000, 3600), okRoutes: 2}

	_, err := PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 7},
		store, store, store, flaky)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalService))
	assert.Zero(t, store.saveCalls)
}

func TestPlanItineraryWithoutSelection(t *testing.T) {
	store := newFakeStore()
	provider := distance.NewConstantDirectionsProvider(1, 60)

	_, err := PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 7},
		store, store, store, provider)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))
	assert.Empty(t, provider.RouteCalls())

	_, err = PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 0},
		store, store, store, provider)
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))
}

func TestPlanItineraryRepositoryFailure(t *testing.T) {
	store := storeWithSelection(7, under12Sites(10, 20, 30))
	store.err = errors.New("connection refused")

	_, err := PlanItinerary(context.Background(), plannerConfig(), PlanItineraryRequest{AnalystID: 7},
		store, store, store, distance.NewConstantDirectionsProvider(1, 60))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrBusinessRule))
	assert.False(t, errors.Is(err, domain.ErrExternalService))
}

func TestPlanItineraryDedupeReducesLookups(t *testing.T) {
	run := func(dedupe bool) (int, *PlanItineraryResult) {
		store := storeWithSelection(7, under12Sites(10, 20, 30, 40, 50))
		provider := distance.NewConstantDirectionsProvider(50000, 3600)
		req := PlanItineraryRequest{AnalystID: 7}
		var memo *cache.MemoDistanceProvider
		if dedupe {
			memo = cache.NewMemoDistanceProvider(provider, nil)
			req.Legs = memo
		}

		res, err := PlanItinerary(context.Background(), plannerConfig(), req,
			store, store, store, provider)
		require.NoError(t, err)
		if memo != nil {
			assert.Positive(t, memo.Hits())
		}
		return provider.DistanceCalls(), res
	}

	plain, plainRes := run(false)
	deduped, dedupedRes := run(true)

	assert.Less(t, deduped, plain)
	assert.Equal(t, plainRes.Itinerary.Days, dedupedRes.Itinerary.Days)
}
