package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/songbox/internal/catalog"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if absent, initializes the database, runs
// migrations, and seeds the default platforms.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = shared.DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err := shared.LoadConfig(configPath); err == nil {
				r.config = config
			}
		}
	}

	dbPath := r.config.Database.Path
	if dbPath == "" {
		dbPath = shared.DefaultDatabasePath()
	}
	r.logger.Info("initializing database", "path", dbPath)

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info("seeding platforms")
	if err := catalog.New(db, r.logger).SeedPlatforms(ctx); err != nil {
		return fmt.Errorf("failed to seed platforms: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", dbPath)
	return nil
}
