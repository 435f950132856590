package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
)

// SQL-backed implementation of the site, activity and route history ports.
// The same queries serve SQLite and Postgres; placeholders are rebound per Dialect.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{DB: db, Dialect: d}
}

const siteColumns = `
	s.code, s.name, s.latitude, s.longitude, s.population, s.flood_events,
	s.dry_season_shortages, s.heavy_metal_readings, s.has_chlorination,
	s.emergency_declarations, s.population_under_12, s.health_facilities,
	s.education_facilities, s.surrounding_conflicts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(row rowScanner) (domain.Site, error) {
	var s domain.Site
	a := &s.Attributes
	err := row.Scan(
		&s.Code, &s.Name, &s.Coords.Lat, &s.Coords.Lon, &a.Population, &a.FloodEvents,
		&a.DrySeasonShortages, &a.HeavyMetalReadings, &a.HasChlorination,
		&a.EmergencyDeclaration, &a.PopulationUnder12, &a.HealthFacilities,
		&a.EducationFacilities, &a.SurroundingConflicts,
	)
	return s, err
}

func (s *SQLStore) check() error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}
	return nil
}

// Return every site with coordinates, ordered by code.
func (s *SQLStore) ListSites(ctx context.Context) (_ []domain.Site, err error) {
	defer obs.Time(ctx, "store.ListSites")(&err)

	if err := s.check(); err != nil {
		return nil, err
	}

	query := `
	SELECT` + siteColumns + `
	FROM sites s
	WHERE s.latitude IS NOT NULL AND s.longitude IS NOT NULL
	ORDER BY s.code;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sites: query sites table: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.Site, 0, 64)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("list sites: scan row: %w", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: row iteration: %w", err)
	}

	return sites, nil
}

// Return the sites of the analyst's most recent selection, in selection order.
// Sites without coordinates are skipped.
func (s *SQLStore) LatestSelection(ctx context.Context, analystID int) (_ []domain.Site, err error) {
	defer obs.Time(ctx, "store.LatestSelection")(&err)

	if err := s.check(); err != nil {
		return nil, err
	}

	query := s.Dialect.Rebind(`
	SELECT` + siteColumns + `
	FROM site_selections sel
	JOIN sites s ON s.code = sel.site_code
	WHERE sel.analyst_id = ?
		AND sel.selected_at = (
			SELECT MAX(selected_at) FROM site_selections WHERE analyst_id = ?
		)
		AND s.latitude IS NOT NULL AND s.longitude IS NOT NULL
	ORDER BY sel.id;
	`)
	rows, err := s.DB.QueryContext(ctx, query, analystID, analystID)
	if err != nil {
		return nil, fmt.Errorf("latest selection: query site_selections: %w", err)
	}
	defer rows.Close()

	sites := []domain.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("latest selection: scan row: %w", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest selection: row iteration: %w", err)
	}

	return sites, nil
}

// Replace the analyst's selection; every new row shares the timestamp at.
func (s *SQLStore) ReplaceSelection(ctx context.Context, analystID int, codes []string, at time.Time) error {
	if err := s.check(); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace selection: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.Dialect.Rebind(`DELETE FROM site_selections WHERE analyst_id = ?;`), analystID); err != nil {
		return fmt.Errorf("replace selection: delete previous: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO site_selections (analyst_id, site_code, selected_at)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("replace selection: prepare insert: %w", err)
	}
	defer stmt.Close()

	at = at.UTC().Truncate(time.Second)
	for _, code := range codes {
		if _, err := stmt.ExecContext(ctx, analystID, code, at); err != nil {
			return fmt.Errorf("replace selection: insert code=%q: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace selection: commit tx: %w", err)
	}

	return nil
}

// Return the analyst's selected activities keyed by site code.
func (s *SQLStore) SelectedActivities(ctx context.Context, analystID int) (_ domain.SiteActivities, err error) {
	defer obs.Time(ctx, "store.SelectedActivities")(&err)

	if err := s.check(); err != nil {
		return nil, err
	}

	query := s.Dialect.Rebind(`
	SELECT sel.site_code, a.id, a.name, a.duration_minutes
	FROM activity_selections sel
	JOIN activities a ON a.id = sel.activity_id
	WHERE sel.analyst_id = ?
	ORDER BY sel.id;
	`)
	rows, err := s.DB.QueryContext(ctx, query, analystID)
	if err != nil {
		return nil, fmt.Errorf("selected activities: query activity_selections: %w", err)
	}
	defer rows.Close()

	out := domain.SiteActivities{}
	for rows.Next() {
		var code string
		var a domain.Activity
		if err := rows.Scan(&code, &a.ID, &a.Name, &a.Minutes); err != nil {
			return nil, fmt.Errorf("selected activities: scan row: %w", err)
		}
		out[code] = append(out[code], a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("selected activities: row iteration: %w", err)
	}

	return out, nil
}

// Replace the analyst's activity selection.
func (s *SQLStore) ReplaceActivitySelection(ctx context.Context, analystID int, activityIDs map[string][]int) error {
	if err := s.check(); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace activity selection: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.Dialect.Rebind(`DELETE FROM activity_selections WHERE analyst_id = ?;`), analystID); err != nil {
		return fmt.Errorf("replace activity selection: delete previous: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO activity_selections (analyst_id, site_code, activity_id)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("replace activity selection: prepare insert: %w", err)
	}
	defer stmt.Close()

	for code, ids := range activityIDs {
		for _, id := range ids {
			if _, err := stmt.ExecContext(ctx, analystID, strings.TrimSpace(code), id); err != nil {
				return fmt.Errorf("replace activity selection: insert code=%q activity=%d: %w", code, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace activity selection: commit tx: %w", err)
	}

	return nil
}
