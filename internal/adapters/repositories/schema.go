package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates every table used by the SQL store.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSitesQuery := `
	CREATE TABLE IF NOT EXISTS sites (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		population INTEGER NOT NULL DEFAULT 0,
		flood_events INTEGER NOT NULL DEFAULT 0,
		dry_season_shortages INTEGER NOT NULL DEFAULT 0,
		heavy_metal_readings INTEGER NOT NULL DEFAULT 0,
		has_chlorination BOOLEAN NOT NULL DEFAULT FALSE,
		emergency_declarations INTEGER NOT NULL DEFAULT 0,
		population_under_12 INTEGER NOT NULL DEFAULT 0,
		health_facilities INTEGER NOT NULL DEFAULT 0,
		education_facilities INTEGER NOT NULL DEFAULT 0,
		surrounding_conflicts INTEGER NOT NULL DEFAULT 0
	);
	`

	createActivitiesQuery := `
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL
	);
	`

	createSiteSelectionsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS site_selections (
		id %s,
		analyst_id INTEGER NOT NULL,
		site_code TEXT NOT NULL REFERENCES sites(code),
		selected_at TIMESTAMP NOT NULL
	);
	`, d.serialPrimaryKey())

	createActivitySelectionsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS activity_selections (
		id %s,
		analyst_id INTEGER NOT NULL,
		site_code TEXT NOT NULL,
		activity_id INTEGER NOT NULL REFERENCES activities(id)
	);
	`, d.serialPrimaryKey())

	createRoutesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS generated_routes (
		id %s,
		analyst_id INTEGER NOT NULL,
		generated_at TIMESTAMP NOT NULL,
		duration_minutes DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		total_priority DOUBLE PRECISION NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`, d.serialPrimaryKey())

	createRouteStopsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS route_stops (
		id %s,
		route_id INTEGER NOT NULL REFERENCES generated_routes(id) ON DELETE CASCADE,
		site_code TEXT NOT NULL,
		visit_order INTEGER NOT NULL,
		day_number INTEGER NOT NULL,
		priority DOUBLE PRECISION NOT NULL,
		estimated_minutes DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL
	);
	`, d.serialPrimaryKey())

	createIndexQueries := []string{
		`CREATE INDEX IF NOT EXISTS idx_site_selections_analyst ON site_selections(analyst_id, selected_at);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_selections_analyst ON activity_selections(analyst_id);`,
		`CREATE INDEX IF NOT EXISTS idx_generated_routes_analyst ON generated_routes(analyst_id, generated_at);`,
		`CREATE INDEX IF NOT EXISTS idx_route_stops_route ON route_stops(route_id, day_number, visit_order);`,
	}

	statements := []string{
		createSitesQuery,
		createActivitiesQuery,
		createSiteSelectionsQuery,
		createActivitySelectionsQuery,
		createRoutesQuery,
		createRouteStopsQuery,
	}
	statements = append(statements, createIndexQueries...)

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type SiteSeed struct {
	Code                  string   `json:"code"`
	Name                  string   `json:"name"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	Population            int      `json:"population"`
	FloodEvents           int      `json:"flood_events"`
	DrySeasonShortages    int      `json:"dry_season_shortages"`
	HeavyMetalReadings    int      `json:"heavy_metal_readings"`
	HasChlorination       bool     `json:"has_chlorination"`
	EmergencyDeclarations int      `json:"emergency_declarations"`
	PopulationUnder12     int      `json:"population_under_12"`
	HealthFacilities      int      `json:"health_facilities"`
	EducationFacilities   int      `json:"education_facilities"`
	SurroundingConflicts  int      `json:"surrounding_conflicts"`
}

type ActivitySeed struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SeedSitesFromJSON upserts the site catalog from a JSON file.
func SeedSitesFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed sites: read %q: %w", jsonPath, err)
	}

	var data []SiteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed sites: parse json: %w", err)
	}

	rows := make([]SiteSeed, 0, len(data))
	for i, item := range data {
		item.Code = strings.TrimSpace(item.Code)
		if item.Code == "" {
			return fmt.Errorf("seed sites: item at index %d: code cannot be empty", i+1)
		}
		if (item.Latitude == nil) != (item.Longitude == nil) {
			return fmt.Errorf("seed sites: site %q: latitude and longitude must be set together", item.Code)
		}
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed sites: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := d.Rebind(`
	INSERT INTO sites (
		code, name, latitude, longitude, population, flood_events, dry_season_shortages,
		heavy_metal_readings, has_chlorination, emergency_declarations, population_under_12,
		health_facilities, education_facilities, surrounding_conflicts
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (code) DO UPDATE SET
		name = excluded.name,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		population = excluded.population,
		flood_events = excluded.flood_events,
		dry_season_shortages = excluded.dry_season_shortages,
		heavy_metal_readings = excluded.heavy_metal_readings,
		has_chlorination = excluded.has_chlorination,
		emergency_declarations = excluded.emergency_declarations,
		population_under_12 = excluded.population_under_12,
		health_facilities = excluded.health_facilities,
		education_facilities = excluded.education_facilities,
		surrounding_conflicts = excluded.surrounding_conflicts;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed sites: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.ExecContext(ctx,
			s.Code, s.Name, s.Latitude, s.Longitude, s.Population, s.FloodEvents, s.DrySeasonShortages,
			s.HeavyMetalReadings, s.HasChlorination, s.EmergencyDeclarations, s.PopulationUnder12,
			s.HealthFacilities, s.EducationFacilities, s.SurroundingConflicts,
		); err != nil {
			return fmt.Errorf("seed sites: insert code=%q: %w", s.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sites: commit tx: %w", err)
	}

	return nil
}

// SeedActivitiesFromJSON upserts the activity catalog from a JSON file.
func SeedActivitiesFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed activities: read %q: %w", jsonPath, err)
	}

	var data []ActivitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed activities: parse json: %w", err)
	}

	for i, item := range data {
		if item.ID <= 0 {
			return fmt.Errorf("seed activities: invalid id at index %d: %d", i+1, item.ID)
		}
		if item.DurationMinutes <= 0 {
			return fmt.Errorf("seed activities: activity %d: duration must be positive", item.ID)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed activities: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, d.Rebind(`
	INSERT INTO activities (id, name, duration_minutes)
	VALUES (?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		duration_minutes = excluded.duration_minutes;
	`))
	if err != nil {
		return fmt.Errorf("seed activities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range data {
		if _, err := stmt.ExecContext(ctx, a.ID, strings.TrimSpace(a.Name), a.DurationMinutes); err != nil {
			return fmt.Errorf("seed activities: insert id=%d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed activities: commit tx: %w", err)
	}

	return nil
}
