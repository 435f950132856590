package ports

import (
	"context"
	"visit-route-service/internal/domain"
)

// Port: a boundary for the activities an analyst plans per site.
type ActivityRepository interface {
	// Retrieve selected activities keyed by site code.
	SelectedActivities(ctx context.Context, analystID int) (domain.SiteActivities, error)
	// Replace the analyst's activity selection.
	ReplaceActivitySelection(ctx context.Context, analystID int, activityIDs map[string][]int) error
}
