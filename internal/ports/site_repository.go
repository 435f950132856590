package ports

import (
	"context"
	"time"
	"visit-route-service/internal/domain"
)

// Port: a boundary for the site catalog and analysts' site selections.
type SiteRepository interface {
	// Retrieve every site that has coordinates.
	ListSites(ctx context.Context) ([]domain.Site, error)
	// Retrieve the sites of the analyst's most recent selection.
	LatestSelection(ctx context.Context, analystID int) ([]domain.Site, error)
	// Replace the analyst's selection with the given site codes, stamped with at.
	ReplaceSelection(ctx context.Context, analystID int, codes []string, at time.Time) error
}
