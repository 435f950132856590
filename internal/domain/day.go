package domain

import (
	"fmt"
	"slices"
)

// A single stop inside a day, recorded at insertion time.
type Visit struct {
	Site            ScoredSite
	TravelMinutes   int
	ActivityMinutes int
	Priority        float64
}

// Represents one working day of visits.
// A DayBucket is closed by the scheduler once its return trip is known and
// is not modified afterwards; labeling only changes Number and Label.
type DayBucket struct {
	Number            int
	Label             string
	Visits            []Visit
	InDayMinutes      int
	ReturnMinutes     int
	AggregatePriority float64
}

// Total working minutes including the trip back to the origin.
func (d DayBucket) TotalMinutes() int { return d.InDayMinutes + d.ReturnMinutes }

// Sites returns the visited sites in visit order.
func (d DayBucket) Sites() []ScoredSite {
	out := make([]ScoredSite, 0, len(d.Visits))
	for _, v := range d.Visits {
		out = append(out, v.Site)
	}
	return out
}

// LabelDays orders days by descending aggregate priority and relabels them
// "Day 1".."Day N" by position. Ties keep scheduling order. The input slice
// is not modified.
func LabelDays(days []DayBucket) []DayBucket {
	out := slices.Clone(days)
	slices.SortStableFunc(out, func(a, b DayBucket) int {
		switch {
		case a.AggregatePriority > b.AggregatePriority:
			return -1
		case a.AggregatePriority < b.AggregatePriority:
			return 1
		}
		return 0
	})

	for i := range out {
		out[i].Number = i + 1
		out[i].Label = fmt.Sprintf("Day %d", i+1)
	}
	return out
}
