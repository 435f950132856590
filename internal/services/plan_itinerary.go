package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/geo"
	"visit-route-service/internal/platform/logging"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

// Planner settings passed explicitly into the pipeline.
type PlannerConfig struct {
	DayBudgetMinutes int
	Origin           domain.Coordinates
	OriginName       string
	RouteNote        string
}

type PlanItineraryRequest struct {
	AnalystID int
	// Timestamp stored with the route record; time.Now when zero.
	Now time.Time
	// Point-to-point provider for leg lookups of this request. The directions
	// provider is used when nil.
	Legs ports.DistanceProvider
}

// Implemented by providers that answer lookups from memory.
type hitCounter interface {
	Hits() int
}

type PlanItineraryResult struct {
	RouteID   int64
	Itinerary *domain.Itinerary
}

// Plan a multi-day itinerary for the analyst's latest selection and store it
// in the route history.
//
// Sites are scored, partitioned into days and labeled by day priority. The
// full route and each day route are then requested from the directions
// provider and reconciled into the itinerary. Nothing is stored unless the
// whole itinerary was assembled.
func PlanItinerary(
	ctx context.Context,
	cfg PlannerConfig,
	req PlanItineraryRequest,
	sites ports.SiteRepository,
	activities ports.ActivityRepository,
	history ports.RouteHistoryRepository,
	directions ports.DirectionsProvider,
) (_ *PlanItineraryResult, err error) {
	defer obs.Time(ctx, "services.PlanItinerary")(&err)

	if req.AnalystID <= 0 {
		return nil, domain.BusinessRule("analyst id must be positive")
	}
	if cfg.DayBudgetMinutes <= 0 {
		cfg.DayBudgetMinutes = DefaultDayBudgetMinutes
	}

	selected, err := sites.LatestSelection(ctx, req.AnalystID)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: load selection: %w", err)
	}
	if len(selected) == 0 {
		return nil, domain.BusinessRule("no active selection")
	}

	scored, err := ScoreSites(selected)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	acts, err := activities.SelectedActivities(ctx, req.AnalystID)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: load activities: %w", err)
	}

	var pointToPoint ports.DistanceProvider = directions
	if req.Legs != nil {
		pointToPoint = req.Legs
	}
	oracle := NewTravelTimeOracle(pointToPoint)

	days, err := PartitionDays(ctx, scored, cfg.Origin, acts.Durations(), cfg.DayBudgetMinutes, oracle)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: partition days: %w", err)
	}
	days = domain.LabelDays(days)

	full, err := RequestFullRoute(ctx, directions, cfg.Origin, scored)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	it, err := AssembleItinerary(ctx, AssemblyInput{
		OriginName: cfg.OriginName,
		Origin:     cfg.Origin,
		Sites:      scored,
		Route:      full,
		Days:       days,
		Activities: acts,
	}, directions, oracle)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	routeID, err := history.SaveRoute(ctx, buildRouteRecord(req.AnalystID, now, cfg.RouteNote, it, days))
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: save route: %w", err)
	}

	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("analyst_id", req.AnalystID),
		zap.Int64("route_id", routeID),
		zap.Int("sites", len(scored)),
		zap.Int("days", len(days)),
	}
	if hc, ok := pointToPoint.(hitCounter); ok {
		fields = append(fields, zap.Int("lookup_cache_hits", hc.Hits()))
	}
	logging.L().Info("itinerary planned", fields...)

	return &PlanItineraryResult{RouteID: routeID, Itinerary: it}, nil
}

// One stop row per visit. Distances are great-circle kilometers from the
// previous stop of the same day; the first stop of a day records 0.
func buildRouteRecord(analystID int, at time.Time, note string, it *domain.Itinerary, days []domain.DayBucket) domain.RouteRecord {
	rec := domain.RouteRecord{
		AnalystID:     analystID,
		GeneratedAt:   at,
		DurationMin:   it.DurationMin,
		DistanceKm:    it.DistanceKm,
		TotalPriority: it.TotalPriority(),
		Note:          note,
	}

	for _, day := range days {
		var prev domain.Coordinates
		for j, v := range day.Visits {
			dist := 0.0
			if j > 0 {
				dist = geo.DistanceKm(prev, v.Site.Coords)
			}
			rec.Stops = append(rec.Stops, domain.RouteStopRecord{
				SiteCode:         v.Site.Code,
				VisitOrder:       j + 1,
				DayNumber:        day.Number,
				Priority:         v.Priority,
				EstimatedMinutes: float64(day.TotalMinutes()),
				DistanceKm:       dist,
			})
			prev = v.Site.Coords
		}
	}

	return rec
}
