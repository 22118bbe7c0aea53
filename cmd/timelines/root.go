package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/timeline-dev/timelines/db"
	"github.com/timeline-dev/timelines/internal/config"
	"github.com/timeline-dev/timelines/internal/logging"
	"gorm.io/gorm"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "timelines",
	Short:         "Timelines is a web app for timelines of events, people and places",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads config, builds the logger and opens a migrated database.
func bootstrap() (*config.Config, *logging.SlogLogger, *gorm.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logging.New(os.Stdout, cfg.LogLevel)

	conn, err := db.ConnectDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := db.MigrateDatabase(conn); err != nil {
		_ = db.Close(conn)
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	return cfg, log, conn, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, conn, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(conn)

		log.Info(cmd.Context(), "database schema is up to date")
		return nil
	},
}
