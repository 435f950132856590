// Package config resolves process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
)

// Config is the resolved process configuration.
type Config struct {
	Port               string
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	SeedSitesPath      string
	SeedActivitiesPath string

	DirectionsAPIKey  string
	DirectionsBaseURL string

	Origin            domain.Coordinates
	OriginName        string
	DayBudgetMinutes  int
	RouteNote         string
	DedupeOracleCalls bool

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

var defaults = map[string]any{
	"port":                 "8080",
	"db_driver":            db.DriverSQLite,
	"db_path":              "data/app.db",
	"database_url":         "",
	"seed_sites_path":      "data/seeds/sites.json",
	"seed_activities_path": "data/seeds/activities.json",
	"google_maps_api_key":  "",
	"directions_base_url":  "https://maps.googleapis.com",
	"origin_coords":        "-5.189773,-80.6406592",
	"origin_name":          "SUNASS ODS Piura",
	"day_budget_minutes":   540,
	"route_note":           "Route generated automatically",
	"dedupe_oracle_calls":  false,
	"cors_origins":         "",
	"log_level":            "info",
	"log_format":           "json",
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads a .env file if one exists. It reports whether one was found.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load resolves the configuration from environment variables and validates it.
func Load() (*Config, error) {
	v := newViper()

	origin, err := domain.ParseCoordinates(v.GetString("origin_coords"))
	if err != nil {
		return nil, fmt.Errorf("config: ORIGIN_COORDS: %w", err)
	}

	cfg := &Config{
		Port:               v.GetString("port"),
		DBDriver:           v.GetString("db_driver"),
		DBPath:             v.GetString("db_path"),
		DatabaseURL:        v.GetString("database_url"),
		SeedSitesPath:      v.GetString("seed_sites_path"),
		SeedActivitiesPath: v.GetString("seed_activities_path"),
		DirectionsAPIKey:   strings.TrimSpace(v.GetString("google_maps_api_key")),
		DirectionsBaseURL:  strings.TrimRight(v.GetString("directions_base_url"), "/"),
		Origin:             origin,
		OriginName:         v.GetString("origin_name"),
		DayBudgetMinutes:   v.GetInt("day_budget_minutes"),
		RouteNote:          v.GetString("route_note"),
		DedupeOracleCalls:  v.GetBool("dedupe_oracle_calls"),
		CORSOrigins:        splitList(v.GetString("cors_origins")),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that do not depend on the command being run.
func (c *Config) Validate() error {
	var errs []error

	if c.DayBudgetMinutes <= 0 {
		errs = append(errs, fmt.Errorf("DAY_BUDGET_MINUTES must be positive, got %d", c.DayBudgetMinutes))
	}

	switch c.DBDriver {
	case db.DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite driver"))
		}
	case db.DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the pgx driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, c.DBDriver))
	}

	for _, o := range c.CORSOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			errs = append(errs, fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", o))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == db.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	v := viper.New()
	v.AutomaticEnv()
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
