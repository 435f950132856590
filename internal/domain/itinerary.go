package domain

// A single point-to-point segment measured by the directions oracle.
type RouteLeg struct {
	DistanceKm float64
	Minutes    int
}

type FlowKind string

const (
	FlowStart  FlowKind = "start"
	FlowStop   FlowKind = "stop"
	FlowReturn FlowKind = "return"
)

// One entry of a day's flow of visits: the departure, a stop, or the return.
type FlowEntry struct {
	Kind            FlowKind
	Order           int
	Name            string
	Code            string
	Coords          Coordinates
	Leg             RouteLeg
	Activities      []Activity
	ActivityMinutes int
}

// Detailed plan for one labeled day.
type DayPlan struct {
	Number       int
	Label        string
	Path         []Coordinates
	StopCount    int
	TotalMinutes int
	Flow         []FlowEntry
	MapsURL      string
}

// The final multi-day travel plan.
type Itinerary struct {
	OriginName   string
	Origin       Coordinates
	Destination  Coordinates
	Path         []Coordinates
	OrderedSites []ScoredSite
	DistanceKm   float64
	DurationMin  float64
	MapsURL      string
	Days         []DayPlan
}

// TotalPriority sums the priority of every site on the itinerary.
func (it *Itinerary) TotalPriority() float64 {
	total := 0.0
	for _, s := range it.OrderedSites {
		total += s.Priority
	}
	return total
}
