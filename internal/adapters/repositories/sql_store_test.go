package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(ctx, conn, SQLite))
	require.NoError(t, SeedSitesFromJSON(ctx, conn, SQLite, "testdata/sites.json"))
	require.NoError(t, SeedActivitiesFromJSON(ctx, conn, SQLite, "testdata/activities.json"))

	return NewSQLStore(conn, SQLite)
}

func TestListSitesSkipsSitesWithoutCoordinates(t *testing.T) {
	store := newTestStore(t)

	sites, err := store.ListSites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 3)

	first := sites[0]
	assert.Equal(t, "2001140036", first.Code)
	assert.Equal(t, "Chapairá", first.Name)
	assert.Equal(t, domain.Coordinates{Lat: -5.0953, Lon: -80.16252}, first.Coords)
	assert.Equal(t, domain.RiskAttributes{
		Population:           1200,
		FloodEvents:          3,
		DrySeasonShortages:   2,
		HeavyMetalReadings:   1,
		HasChlorination:      true,
		EmergencyDeclaration: 1,
		PopulationUnder12:    300,
		HealthFacilities:     1,
		EducationFacilities:  2,
	}, first.Attributes)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, SeedSitesFromJSON(ctx, store.DB, SQLite, "testdata/sites.json"))

	sites, err := store.ListSites(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 3)
}

func TestReplaceSelectionKeepsOnlyLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.ReplaceSelection(ctx, 7, []string{"2001140036", "2001140068", "2001140099"}, first))
	require.NoError(t, store.ReplaceSelection(ctx, 7, []string{"2001140099", "2001140036", "2001149999"}, first.Add(time.Hour)))
	require.NoError(t, store.ReplaceSelection(ctx, 8, []string{"2001140068"}, first))

	sites, err := store.LatestSelection(ctx, 7)
	require.NoError(t, err)

	codes := []string{}
	for _, s := range sites {
		codes = append(codes, s.Code)
	}
	// selection order is kept and the site without coordinates is skipped
	assert.Equal(t, []string{"2001140099", "2001140036"}, codes)

	none, err := store.LatestSelection(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActivitySelectionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceActivitySelection(ctx, 7, map[string][]int{"2001140036": {3}}))
	require.NoError(t, store.ReplaceActivitySelection(ctx, 7, map[string][]int{
		"2001140036": {1, 2},
		"2001140068": {3},
	}))

	acts, err := store.SelectedActivities(ctx, 7)
	require.NoError(t, err)

	require.Len(t, acts, 2)
	assert.Equal(t, []domain.Activity{
		{ID: 1, Name: "Water sampling", Minutes: 60},
		{ID: 2, Name: "Operator interview", Minutes: 45},
	}, acts["2001140036"])
	assert.Equal(t, 105, acts.Durations().Minutes("2001140036"))
	assert.Equal(t, 30, acts.Durations().Minutes("2001140068"))
}

func TestSaveAndListRoutes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := domain.RouteRecord{
		AnalystID:     7,
		GeneratedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		DurationMin:   300,
		DistanceKm:    120.5,
		TotalPriority: 0.8,
		Note:          "first",
		Stops:         []domain.RouteStopRecord{{SiteCode: "2001140036", VisitOrder: 1, DayNumber: 1, Priority: 0.8, EstimatedMinutes: 300}},
	}
	newer := domain.RouteRecord{
		AnalystID:     7,
		GeneratedAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		DurationMin:   600,
		DistanceKm:    220,
		TotalPriority: 1.2,
		Note:          "second",
		Stops: []domain.RouteStopRecord{
			{SiteCode: "2001140099", VisitOrder: 1, DayNumber: 2, Priority: 0.3, EstimatedMinutes: 240},
			{SiteCode: "2001140068", VisitOrder: 2, DayNumber: 1, Priority: 0.4, EstimatedMinutes: 500, DistanceKm: 7.2},
			{SiteCode: "2001140036", VisitOrder: 1, DayNumber: 1, Priority: 0.5, EstimatedMinutes: 500},
		},
	}

	id1, err := store.SaveRoute(ctx, older)
	require.NoError(t, err)
	id2, err := store.SaveRoute(ctx, newer)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	routes, err := store.ListRoutes(ctx, 7)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, id2, routes[0].ID)
	assert.Equal(t, "second", routes[0].Note)
	assert.True(t, newer.GeneratedAt.Equal(routes[0].GeneratedAt))
	require.Len(t, routes[0].Stops, 3)
	assert.Equal(t, "2001140036", routes[0].Stops[0].SiteCode)
	assert.Equal(t, "2001140068", routes[0].Stops[1].SiteCode)
	assert.InDelta(t, 7.2, routes[0].Stops[1].DistanceKm, 1e-9)
	assert.Equal(t, "2001140099", routes[0].Stops[2].SiteCode)

	assert.Equal(t, id1, routes[1].ID)
	assert.Len(t, routes[1].Stops, 1)

	empty, err := store.ListRoutes(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNilDBIsRejected(t *testing.T) {
	store := NewSQLStore((*sql.DB)(nil), SQLite)
	_, err := store.ListSites(context.Background())
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", Postgres.Rebind(q))

	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
