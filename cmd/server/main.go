package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/adapters/distance"
	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/api"
	"visit-route-service/internal/config"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/platform/logging"
	"visit-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, Google Directions) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.Set(logger)

	if !foundEnv {
		logger.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.DirectionsAPIKey == "" {
		return errors.New("GOOGLE_MAPS_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBDriver == db.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}

	// Initialize schema and seed the catalogs on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg, logger); err != nil {
		return err
	}

	provider, err := distance.NewGoogleDirectionsProvider(cfg.DirectionsAPIKey, cfg.DirectionsBaseURL)
	if err != nil {
		return err
	}

	store := repositories.NewSQLStore(conn, dialect)
	router := api.NewRouter(api.Deps{
		Sites:      store,
		Activities: store,
		History:    store,
		Directions: provider,
		Planner: services.PlannerConfig{
			DayBudgetMinutes: cfg.DayBudgetMinutes,
			Origin:           cfg.Origin,
			OriginName:       cfg.OriginName,
			RouteNote:        cfg.RouteNote,
		},
		DedupeOracleCalls: cfg.DedupeOracleCalls,
		DB:                conn,
		CORSOrigins:       cfg.CORSOrigins,
	})

	// Planning issues many sequential directions calls, so writes get a long timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initAndSeed(ctx context.Context, conn *sql.DB, d repositories.Dialect, cfg *config.Config, logger *zap.Logger) error {
	if err := repositories.InitSchema(ctx, conn, d); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	seeds := []struct {
		path string
		seed func(context.Context, *sql.DB, repositories.Dialect, string) error
	}{
		{cfg.SeedSitesPath, repositories.SeedSitesFromJSON},
		{cfg.SeedActivitiesPath, repositories.SeedActivitiesFromJSON},
	}
	for _, s := range seeds {
		if _, err := os.Stat(s.path); err != nil {
			logger.Info("seed file not found, skipping", zap.String("path", s.path))
			continue
		}
		if err := s.seed(ctx, conn, d, s.path); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
	}

	return nil
}
