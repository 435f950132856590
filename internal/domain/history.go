package domain

import "time"

// A persisted row for one visited stop of a generated route.
type RouteStopRecord struct {
	SiteCode         string
	VisitOrder       int
	DayNumber        int
	Priority         float64
	EstimatedMinutes float64
	DistanceKm       float64
}

// A persisted summary of one generated itinerary.
type RouteRecord struct {
	ID            int64
	AnalystID     int
	GeneratedAt   time.Time
	DurationMin   float64
	DistanceKm    float64
	TotalPriority float64
	Note          string
	Stops         []RouteStopRecord
}
