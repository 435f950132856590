package dto

import "time"

type ActivityResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

type RankedSiteResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Coordinates string  `json:"coordinates"`
	Priority    float64 `json:"priority"`
}

// One flow entry: "start", "stop" or "return".
type FlowEntryResponse struct {
	Kind            string             `json:"kind"`
	Order           int                `json:"order"`
	Name            string             `json:"name"`
	Code            string             `json:"code,omitempty"`
	Coordinates     string             `json:"coordinates"`
	DistanceKm      float64            `json:"distance_from_previous_km"`
	Minutes         int                `json:"minutes_from_previous"`
	Activities      []ActivityResponse `json:"activities,omitempty"`
	ActivityMinutes int                `json:"activity_minutes"`
}

type DayResponse struct {
	Day          string              `json:"day"`
	Number       int                 `json:"number"`
	Path         [][2]float64        `json:"path"`
	StopCount    int                 `json:"stop_count"`
	TotalMinutes int                 `json:"total_minutes"`
	Flow         []FlowEntryResponse `json:"flow"`
	MapsURL      string              `json:"maps_url"`
}

type ItineraryResponse struct {
	RouteID      int64                `json:"route_id"`
	Origin       string               `json:"origin"`
	OriginCoords string               `json:"origin_coordinates"`
	Destination  string               `json:"destination"`
	Path         [][2]float64         `json:"path"`
	OrderedSites []RankedSiteResponse `json:"ordered_sites"`
	DistanceKm   float64              `json:"distance_km"`
	DurationMin  float64              `json:"duration_min"`
	MapsURL      string               `json:"maps_url"`
	Days         []DayResponse        `json:"days"`
}

type RouteStopResponse struct {
	SiteCode         string  `json:"site_code"`
	VisitOrder       int     `json:"visit_order"`
	DayNumber        int     `json:"day_number"`
	Priority         float64 `json:"priority"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	DistanceKm       float64 `json:"distance_km"`
}

type RouteHistoryResponse struct {
	ID            int64               `json:"id"`
	AnalystID     int                 `json:"analyst_id"`
	GeneratedAt   time.Time           `json:"generated_at"`
	DurationMin   float64             `json:"duration_min"`
	DistanceKm    float64             `json:"distance_km"`
	TotalPriority float64             `json:"total_priority"`
	Note          string              `json:"note"`
	Stops         []RouteStopResponse `json:"stops"`
}

type ListRouteHistoryResponse struct {
	Routes []RouteHistoryResponse `json:"routes"`
}
