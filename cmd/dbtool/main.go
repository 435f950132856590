package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/config"
	"visit-route-service/internal/platform/db"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

type dbFlags struct {
	driver string
	dsn    string
}

type dbConn struct {
	conn    *sql.DB
	dialect repositories.Dialect
}

func (f *dbFlags) open(ctx context.Context) (*dbConn, error) {
	d, err := repositories.DialectFor(f.driver)
	if err != nil {
		return nil, err
	}
	if f.dsn == "" {
		return nil, fmt.Errorf("a DSN is required for driver %q", f.driver)
	}
	conn, err := db.Open(ctx, f.driver, f.dsn)
	if err != nil {
		return nil, err
	}
	return &dbConn{conn: conn, dialect: d}, nil
}

func newRoot() *cobra.Command {
	config.LoadDotEnv()

	flags := &dbFlags{}
	root := &cobra.Command{
		Use:          "dbtool",
		Short:        "Initialize and seed the visit route database",
		SilenceUsage: true,
	}

	defaultDriver := config.Get("DB_DRIVER", db.DriverSQLite)
	defaultDSN := config.Get("DATABASE_URL", "")
	if defaultDriver == db.DriverSQLite {
		defaultDSN = config.Get("DB_PATH", "data/app.db")
	}
	root.PersistentFlags().StringVar(&flags.driver, "driver", defaultDriver, `database/sql driver ("sqlite" or "pgx")`)
	root.PersistentFlags().StringVar(&flags.dsn, "dsn", defaultDSN, "database path or connection URL")

	root.AddCommand(initCmd(flags), seedCmd(flags))
	return root
}

func initCmd(flags *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.conn.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Initializing database schema...")
			if err := repositories.InitSchema(cmd.Context(), rc.conn, rc.dialect); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema ready.")
			return nil
		},
	}
}

func seedCmd(flags *dbFlags) *cobra.Command {
	var sitesPath, activitiesPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the site and activity catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.conn.Close()

			if err := repositories.InitSchema(cmd.Context(), rc.conn, rc.dialect); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeding sites from %s...\n", sitesPath)
			if err := repositories.SeedSitesFromJSON(cmd.Context(), rc.conn, rc.dialect, sitesPath); err != nil {
				return fmt.Errorf("seeding sites failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeding activities from %s...\n", activitiesPath)
			if err := repositories.SeedActivitiesFromJSON(cmd.Context(), rc.conn, rc.dialect, activitiesPath); err != nil {
				return fmt.Errorf("seeding activities failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeding complete.")
			return nil
		},
	}
	cmd.Flags().StringVar(&sitesPath, "sites", config.Get("SEED_SITES_PATH", "data/seeds/sites.json"), "site catalog JSON file")
	cmd.Flags().StringVar(&activitiesPath, "activities", config.Get("SEED_ACTIVITIES_PATH", "data/seeds/activities.json"), "activity catalog JSON file")
	return cmd
}
