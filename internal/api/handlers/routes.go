package handlers

import (
	"math"
	"net/http"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// RouteHandler plans itineraries and serves the route history.
type RouteHandler struct {
	Sites      ports.SiteRepository
	Activities ports.ActivityRepository
	History    ports.RouteHistoryRepository
	Directions ports.DirectionsProvider
	Config     services.PlannerConfig
	// Builds the point-to-point provider for one request. Directions is used when nil.
	NewLegProvider func() ports.DistanceProvider
}

// Optimal plans, stores and returns an itinerary for the analyst's latest selection.
func (h *RouteHandler) Optimal(w http.ResponseWriter, r *http.Request) {
	analystID, ok := analystIDParam(w, r)
	if !ok {
		return
	}

	req := services.PlanItineraryRequest{AnalystID: analystID}
	if h.NewLegProvider != nil {
		req.Legs = h.NewLegProvider()
	}

	res, err := services.PlanItinerary(
		r.Context(),
		h.Config,
		req,
		h.Sites, h.Activities, h.History, h.Directions,
	)
	if err != nil {
		writeServiceError(w, r, "plan itinerary", err)
		return
	}

	writeJSON(w, r, http.StatusOK, itineraryResponse(res.RouteID, res.Itinerary))
}

// ListHistory returns the analyst's stored routes, newest first.
func (h *RouteHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	analystID, ok := analystIDParam(w, r)
	if !ok {
		return
	}

	routes, err := services.ListRouteHistory(r.Context(), h.History, analystID)
	if err != nil {
		writeServiceError(w, r, "list route history", err)
		return
	}

	res := dto.ListRouteHistoryResponse{Routes: make([]dto.RouteHistoryResponse, 0, len(routes))}
	for _, rt := range routes {
		stops := make([]dto.RouteStopResponse, 0, len(rt.Stops))
		for _, s := range rt.Stops {
			stops = append(stops, dto.RouteStopResponse{
				SiteCode:         s.SiteCode,
				VisitOrder:       s.VisitOrder,
				DayNumber:        s.DayNumber,
				Priority:         s.Priority,
				EstimatedMinutes: s.EstimatedMinutes,
				DistanceKm:       round2(s.DistanceKm),
			})
		}

		res.Routes = append(res.Routes, dto.RouteHistoryResponse{
			ID:            rt.ID,
			AnalystID:     rt.AnalystID,
			GeneratedAt:   rt.GeneratedAt,
			DurationMin:   round2(rt.DurationMin),
			DistanceKm:    round2(rt.DistanceKm),
			TotalPriority: rt.TotalPriority,
			Note:          rt.Note,
			Stops:         stops,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func pathResponse(path []domain.Coordinates) [][2]float64 {
	out := make([][2]float64, 0, len(path))
	for _, c := range path {
		out = append(out, [2]float64{c.Lat, c.Lon})
	}
	return out
}

func itineraryResponse(routeID int64, it *domain.Itinerary) dto.ItineraryResponse {
	res := dto.ItineraryResponse{
		RouteID:      routeID,
		Origin:       it.OriginName,
		OriginCoords: it.Origin.String(),
		Destination:  it.Destination.String(),
		Path:         pathResponse(it.Path),
		OrderedSites: make([]dto.RankedSiteResponse, 0, len(it.OrderedSites)),
		DistanceKm:   round2(it.DistanceKm),
		DurationMin:  round2(it.DurationMin),
		MapsURL:      it.MapsURL,
		Days:         make([]dto.DayResponse, 0, len(it.Days)),
	}

	for _, s := range it.OrderedSites {
		res.OrderedSites = append(res.OrderedSites, dto.RankedSiteResponse{
			Code:        s.Code,
			Name:        s.Name,
			Coordinates: s.Coords.String(),
			Priority:    s.Priority,
		})
	}

	for _, d := range it.Days {
		flow := make([]dto.FlowEntryResponse, 0, len(d.Flow))
		for _, e := range d.Flow {
			var acts []dto.ActivityResponse
			for _, a := range e.Activities {
				acts = append(acts, dto.ActivityResponse{ID: a.ID, Name: a.Name, Minutes: a.Minutes})
			}
			flow = append(flow, dto.FlowEntryResponse{
				Kind:            string(e.Kind),
				Order:           e.Order,
				Name:            e.Name,
				Code:            e.Code,
				Coordinates:     e.Coords.String(),
				DistanceKm:      round2(e.Leg.DistanceKm),
				Minutes:         e.Leg.Minutes,
				Activities:      acts,
				ActivityMinutes: e.ActivityMinutes,
			})
		}

		res.Days = append(res.Days, dto.DayResponse{
			Day:          d.Label,
			Number:       d.Number,
			Path:         pathResponse(d.Path),
			StopCount:    d.StopCount,
			TotalMinutes: d.TotalMinutes,
			Flow:         flow,
			MapsURL:      d.MapsURL,
		})
	}

	return res
}
