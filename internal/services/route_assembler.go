package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/geo"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

var errNoLegs = errors.New("route has no legs")

// LegEstimator measures a single stop-to-stop leg. Failures degrade to a zero leg.
type LegEstimator interface {
	Leg(ctx context.Context, from, to domain.Coordinates) domain.RouteLeg
}

// Input of AssembleItinerary.
type AssemblyInput struct {
	OriginName string
	Origin     domain.Coordinates
	// Sites in the order they were sent as waypoints of Route.
	Sites []domain.ScoredSite
	// Response of the full origin -> every site -> origin route.
	Route ports.RouteResult
	// Labeled day buckets.
	Days       []domain.DayBucket
	Activities domain.SiteActivities
}

// Request the full round trip from origin through every site, in the given order.
// Any failure is an external service error.
func RequestFullRoute(
	ctx context.Context,
	directions ports.DirectionsProvider,
	origin domain.Coordinates,
	sites []domain.ScoredSite,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "assembler.RequestFullRoute")(&err)

	res, err := directions.Route(ctx, ports.RouteRequest{
		Origin:      origin,
		Destination: origin,
		Waypoints:   siteCoords(sites),
	})
	if err != nil {
		return ports.RouteResult{}, domain.ExternalService("request full route", err)
	}
	if len(res.Legs) == 0 {
		return ports.RouteResult{}, domain.ExternalService("request full route", errNoLegs)
	}

	return res, nil
}

// Reconcile the full route with the day partition and build the itinerary.
//
// The full route gives the overall path and totals. Each day is then routed
// on its own (origin -> its stops -> origin) and every leg of the day is
// measured point to point. Day routes are strict: a failure aborts the
// assembly. Leg measurements are lenient and fall back to zero.
func AssembleItinerary(
	ctx context.Context,
	in AssemblyInput,
	directions ports.DirectionsProvider,
	legs LegEstimator,
) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "assembler.AssembleItinerary")(&err)

	if len(in.Route.Legs) == 0 {
		return nil, domain.ExternalService("assemble itinerary", errNoLegs)
	}

	path, err := geo.DecodePath(in.Route.Polyline)
	if err != nil {
		return nil, domain.ExternalService("assemble itinerary", err)
	}

	meters, seconds := 0, 0
	for _, l := range in.Route.Legs {
		meters += l.DistanceMeters
		seconds += l.DurationSeconds
	}

	ordered := orderByWaypoints(in.Sites, in.Route.WaypointOrder)

	it := &domain.Itinerary{
		OriginName:   in.OriginName,
		Origin:       in.Origin,
		Destination:  in.Origin,
		Path:         path,
		OrderedSites: ordered,
		DistanceKm:   float64(meters) / 1000,
		DurationMin:  float64(seconds) / 60,
		MapsURL:      MapsDirectionsURL(in.Origin, in.Origin, siteCoords(ordered)),
		Days:         make([]domain.DayPlan, 0, len(in.Days)),
	}

	for _, day := range in.Days {
		plan, err := assembleDay(ctx, in, day, directions, legs)
		if err != nil {
			return nil, err
		}
		it.Days = append(it.Days, plan)
	}

	return it, nil
}

func assembleDay(
	ctx context.Context,
	in AssemblyInput,
	day domain.DayBucket,
	directions ports.DirectionsProvider,
	legs LegEstimator,
) (domain.DayPlan, error) {
	stops := day.Sites()
	coords := siteCoords(stops)

	res, err := directions.Route(ctx, ports.RouteRequest{
		Origin:      in.Origin,
		Destination: in.Origin,
		Waypoints:   coords,
	})
	if err != nil {
		return domain.DayPlan{}, domain.ExternalService(fmt.Sprintf("request route for %s", day.Label), err)
	}

	path, err := geo.DecodePath(res.Polyline)
	if err != nil {
		return domain.DayPlan{}, domain.ExternalService(fmt.Sprintf("request route for %s", day.Label), err)
	}

	flow := make([]domain.FlowEntry, 0, len(stops)+2)
	flow = append(flow, domain.FlowEntry{
		Kind:   domain.FlowStart,
		Order:  0,
		Name:   in.OriginName,
		Coords: in.Origin,
	})

	prev := in.Origin
	for j, s := range stops {
		acts := slices.Clone(in.Activities[s.Code])
		flow = append(flow, domain.FlowEntry{
			Kind:            domain.FlowStop,
			Order:           j + 1,
			Name:            s.Name,
			Code:            s.Code,
			Coords:          s.Coords,
			Leg:             legs.Leg(ctx, prev, s.Coords),
			Activities:      acts,
			ActivityMinutes: domain.TotalMinutes(acts),
		})
		prev = s.Coords
	}

	flow = append(flow, domain.FlowEntry{
		Kind:   domain.FlowReturn,
		Order:  len(stops) + 1,
		Name:   in.OriginName,
		Coords: in.Origin,
		Leg:    legs.Leg(ctx, prev, in.Origin),
	})

	return domain.DayPlan{
		Number:       day.Number,
		Label:        day.Label,
		Path:         path,
		StopCount:    len(stops),
		TotalMinutes: day.TotalMinutes(),
		Flow:         flow,
		MapsURL:      MapsDirectionsURL(in.Origin, in.Origin, coords),
	}, nil
}

// Reorder sites by the oracle's waypoint order when it is a permutation of
// the sites; otherwise keep the order sent.
func orderByWaypoints(sites []domain.ScoredSite, order []int) []domain.ScoredSite {
	if len(order) != len(sites) {
		return slices.Clone(sites)
	}

	seen := make([]bool, len(sites))
	out := make([]domain.ScoredSite, 0, len(sites))
	for _, idx := range order {
		if idx < 0 || idx >= len(sites) || seen[idx] {
			return slices.Clone(sites)
		}
		seen[idx] = true
		out = append(out, sites[idx])
	}
	return out
}

func siteCoords(sites []domain.ScoredSite) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Coords)
	}
	return out
}

// MapsDirectionsURL builds a Google Maps driving-directions deep link.
func MapsDirectionsURL(origin, destination domain.Coordinates, waypoints []domain.Coordinates) string {
	wp := make([]string, 0, len(waypoints))
	for _, c := range waypoints {
		wp = append(wp, c.String())
	}

	var b strings.Builder
	b.WriteString("https://www.google.com/maps/dir/?api=1")
	b.WriteString("&origin=" + origin.String())
	b.WriteString("&destination=" + destination.String())
	b.WriteString("&travelmode=driving")
	b.WriteString("&waypoints=" + strings.Join(wp, "|"))
	return b.String()
}
