package repositories

import (
	"context"
	"fmt"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
)

// Store the route summary and its stop rows in one transaction.
func (s *SQLStore) SaveRoute(ctx context.Context, rec domain.RouteRecord) (_ int64, err error) {
	defer obs.Time(ctx, "store.SaveRoute")(&err)

	if err := s.check(); err != nil {
		return 0, err
	}

	generatedAt := rec.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var routeID int64
	err = tx.QueryRowContext(ctx, s.Dialect.Rebind(`
	INSERT INTO generated_routes (analyst_id, generated_at, duration_minutes, distance_km, total_priority, note)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING id;
	`), rec.AnalystID, generatedAt.UTC(), rec.DurationMin, rec.DistanceKm, rec.TotalPriority, rec.Note).Scan(&routeID)
	if err != nil {
		return 0, fmt.Errorf("save route: insert generated_routes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO route_stops (route_id, site_code, visit_order, day_number, priority, estimated_minutes, distance_km)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return 0, fmt.Errorf("save route: prepare route_stops insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range rec.Stops {
		if _, err := stmt.ExecContext(ctx, routeID, st.SiteCode, st.VisitOrder, st.DayNumber, st.Priority, st.EstimatedMinutes, st.DistanceKm); err != nil {
			return 0, fmt.Errorf("save route: insert stop code=%q: %w", st.SiteCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save route: commit tx: %w", err)
	}

	return routeID, nil
}

// Return the analyst's routes, newest first, with stops ordered by day and visit order.
func (s *SQLStore) ListRoutes(ctx context.Context, analystID int) (_ []domain.RouteRecord, err error) {
	defer obs.Time(ctx, "store.ListRoutes")(&err)

	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(`
	SELECT id, analyst_id, generated_at, duration_minutes, distance_km, total_priority, note
	FROM generated_routes
	WHERE analyst_id = ?
	ORDER BY generated_at DESC, id DESC;
	`), analystID)
	if err != nil {
		return nil, fmt.Errorf("list routes: query generated_routes: %w", err)
	}

	routes := []domain.RouteRecord{}
	for rows.Next() {
		var r domain.RouteRecord
		if err := rows.Scan(&r.ID, &r.AnalystID, &r.GeneratedAt, &r.DurationMin, &r.DistanceKm, &r.TotalPriority, &r.Note); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	rows.Close()

	// Stops are read after the route cursor is closed: SQLite runs on a single connection.
	for i := range routes {
		stops, err := s.routeStops(ctx, routes[i].ID)
		if err != nil {
			return nil, err
		}
		routes[i].Stops = stops
	}

	return routes, nil
}

func (s *SQLStore) routeStops(ctx context.Context, routeID int64) ([]domain.RouteStopRecord, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(`
	SELECT site_code, visit_order, day_number, priority, estimated_minutes, distance_km
	FROM route_stops
	WHERE route_id = ?
	ORDER BY day_number, visit_order;
	`), routeID)
	if err != nil {
		return nil, fmt.Errorf("list routes: query route_stops for route %d: %w", routeID, err)
	}
	defer rows.Close()

	stops := []domain.RouteStopRecord{}
	for rows.Next() {
		var st domain.RouteStopRecord
		if err := rows.Scan(&st.SiteCode, &st.VisitOrder, &st.DayNumber, &st.Priority, &st.EstimatedMinutes, &st.DistanceKm); err != nil {
			return nil, fmt.Errorf("list routes: scan stop: %w", err)
		}
		stops = append(stops, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: stop iteration: %w", err)
	}

	return stops, nil
}
