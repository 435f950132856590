package services

import (
	"context"
	"time"

	"visit-route-service/internal/domain"
)

// In-memory implementation of the site, activity and route history ports.
type fakeStore struct {
	catalog    []domain.Site
	selections map[int][]domain.Site
	activities map[int]domain.SiteActivities
	routes     []domain.RouteRecord

	replacedCodes []string
	replacedAt    time.Time
	replacedActs  map[string][]int
	saveCalls     int
	err           error
}

func newFakeStore(catalog ...domain.Site) *fakeStore {
	return &fakeStore{
		catalog:    catalog,
		selections: map[int][]domain.Site{},
		activities: map[int]domain.SiteActivities{},
	}
}

func (f *fakeStore) ListSites(ctx context.Context) ([]domain.Site, error) {
	return f.catalog, f.err
}

func (f *fakeStore) LatestSelection(ctx context.Context, analystID int) ([]domain.Site, error) {
	return f.selections[analystID], f.err
}

func (f *fakeStore) ReplaceSelection(ctx context.Context, analystID int, codes []string, at time.Time) error {
	f.replacedCodes = codes
	f.replacedAt = at
	return f.err
}

func (f *fakeStore) SelectedActivities(ctx context.Context, analystID int) (domain.SiteActivities, error) {
	acts := f.activities[analystID]
	if acts == nil {
		acts = domain.SiteActivities{}
	}
	return acts, f.err
}

func (f *fakeStore) ReplaceActivitySelection(ctx context.Context, analystID int, activityIDs map[string][]int) error {
	f.replacedActs = activityIDs
	return f.err
}

func (f *fakeStore) SaveRoute(ctx context.Context, rec domain.RouteRecord) (int64, error) {
	f.saveCalls++
	if f.err != nil {
		return 0, f.err
	}
	rec.ID = int64(len(f.routes) + 1)
	f.routes = append(f.routes, rec)
	return rec.ID, nil
}

func (f *fakeStore) ListRoutes(ctx context.Context, analystID int) ([]domain.RouteRecord, error) {
	out := []domain.RouteRecord{}
	for i := len(f.routes) - 1; i >= 0; i-- {
		if f.routes[i].AnalystID == analystID {
			out = append(out, f.routes[i])
		}
	}
	return out, f.err
}

var testOrigin = domain.Coordinates{Lat: -5.189773, Lon: -80.6406592}

// Sites spread a few kilometers apart along a meridian.
func testSite(code string, i int, attrs domain.RiskAttributes) domain.Site {
	return domain.Site{
		Code:       code,
		Name:       "Site " + code,
		Coords:     domain.Coordinates{Lat: -5.0 - 0.05*float64(i), Lon: -80.2},
		Attributes: attrs,
	}
}

func under12Sites(values ...int) []domain.Site {
	sites := make([]domain.Site, 0, len(values))
	for i, v := range values {
		code := string(rune('A' + i))
		sites = append(sites, testSite(code, i, domain.RiskAttributes{PopulationUnder12: v}))
	}
	return sites
}
