package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// MinSelectedSites is the smallest selection worth planning a route for.
const MinSelectedSites = 3

// Return every site in the catalog that has coordinates.
func ListSites(ctx context.Context, repo ports.SiteRepository) ([]domain.Site, error) {
	sites, err := repo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// Replace the analyst's site selection and return how many sites were stored.
// Codes are trimmed and deduplicated, must name known sites, and at least
// MinSelectedSites must remain.
func RegisterSelection(
	ctx context.Context,
	repo ports.SiteRepository,
	analystID int,
	codes []string,
	now time.Time,
) (int, error) {
	if analystID <= 0 {
		return 0, domain.BusinessRule("analyst id must be positive")
	}

	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	if len(unique) == 0 {
		return 0, domain.BusinessRule("no visit points were selected")
	}
	if len(unique) < MinSelectedSites {
		return 0, domain.BusinessRule(fmt.Sprintf("at least %d visit points must be selected", MinSelectedSites))
	}

	catalog, err := repo.ListSites(ctx)
	if err != nil {
		return 0, fmt.Errorf("register selection: list sites: %w", err)
	}
	known := make(map[string]struct{}, len(catalog))
	for _, s := range catalog {
		known[s.Code] = struct{}{}
	}
	for _, c := range unique {
		if _, ok := known[c]; !ok {
			return 0, domain.BusinessRule(fmt.Sprintf("unknown visit point %q", c))
		}
	}

	if now.IsZero() {
		now = time.Now()
	}
	if err := repo.ReplaceSelection(ctx, analystID, unique, now); err != nil {
		return 0, fmt.Errorf("register selection: %w", err)
	}
	return len(unique), nil
}

// Replace the analyst's activity selection. Every listed site needs at least one activity.
func RegisterActivities(
	ctx context.Context,
	repo ports.ActivityRepository,
	analystID int,
	selection map[string][]int,
) error {
	if analystID <= 0 {
		return domain.BusinessRule("analyst id must be positive")
	}
	if len(selection) == 0 {
		return domain.BusinessRule("no activities were selected")
	}

	cleaned := make(map[string][]int, len(selection))
	for code, ids := range selection {
		code = strings.TrimSpace(code)
		if code == "" {
			return domain.BusinessRule("activity selection has an empty visit point code")
		}
		if len(ids) == 0 {
			return domain.BusinessRule(fmt.Sprintf("visit point %q has no activities", code))
		}
		cleaned[code] = append(cleaned[code], ids...)
	}

	if err := repo.ReplaceActivitySelection(ctx, analystID, cleaned); err != nil {
		return fmt.Errorf("register activities: %w", err)
	}
	return nil
}

// Return the analyst's stored routes, newest first.
func ListRouteHistory(ctx context.Context, repo ports.RouteHistoryRepository, analystID int) ([]domain.RouteRecord, error) {
	if analystID <= 0 {
		return nil, domain.BusinessRule("analyst id must be positive")
	}

	routes, err := repo.ListRoutes(ctx, analystID)
	if err != nil {
		return nil, fmt.Errorf("list route history: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("list route history: analyst %d: %w", analystID, domain.ErrNotFound)
	}
	return routes, nil
}
