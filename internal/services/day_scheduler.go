package services

import (
	"context"

	"visit-route-service/internal/domain"
)

// DefaultDayBudgetMinutes is the length of a working day.
const DefaultDayBudgetMinutes = 540

// PartitionDays splits priority-ordered sites into working days with a single greedy
// forward pass.
//
// A site joins the current day when the day, including the trip back to the
// origin from that site, still fits the budget. Otherwise the current day is
// closed and the site opens a new one. A site that alone exceeds the budget
// still gets a day of its own; sites are never split or dropped.
func PartitionDays(
	ctx context.Context,
	sites []domain.ScoredSite,
	origin domain.Coordinates,
	durations domain.ActivityDurations,
	budgetMinutes int,
	travel TravelEstimator,
) ([]domain.DayBucket, error) {
	if len(sites) == 0 {
		return nil, domain.BusinessRule("the list of visit points is empty")
	}
	if budgetMinutes <= 0 {
		return nil, domain.BusinessRule("the day budget must be positive")
	}

	days := []domain.DayBucket{}
	current := domain.DayBucket{}
	lastStop := origin

	closeDay := func() {
		current.ReturnMinutes = travel.Minutes(ctx, lastStop, origin)
		current.Number = len(days) + 1
		days = append(days, current)
		current = domain.DayBucket{}
		lastStop = origin
	}

	for _, site := range sites {
		travelMin := travel.Minutes(ctx, lastStop, site.Coords)
		activityMin := durations.Minutes(site.Code)
		projected := current.InDayMinutes + travelMin + activityMin
		returnTrip := travel.Minutes(ctx, site.Coords, origin)

		if projected+returnTrip > budgetMinutes && len(current.Visits) > 0 {
			closeDay()
			travelMin = travel.Minutes(ctx, lastStop, site.Coords)
			projected = travelMin + activityMin
		}

		current.Visits = append(current.Visits, domain.Visit{
			Site:            site,
			TravelMinutes:   travelMin,
			ActivityMinutes: activityMin,
			Priority:        site.Priority,
		})
		current.InDayMinutes = projected
		current.AggregatePriority += site.Priority
		lastStop = site.Coords
	}

	if len(current.Visits) > 0 {
		closeDay()
	}

	return days, nil
}
