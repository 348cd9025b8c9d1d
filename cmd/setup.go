package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/chinook/internal/shared"
	"github.com/urfave/cli/v3"
)

// openBootstrapDatabase loads (creating from the template when absent) the config at path
// and opens its sqlite store. MySQL catalogs are provisioned outside this tool.
func (r *Runner) openBootstrapDatabase(path string) (*sql.DB, *shared.Config, error) {
	if _, err := os.Stat(path); err != nil {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			return nil, nil, err
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	if config.Database.Driver != shared.DriverSQLite {
		return nil, nil, fmt.Errorf("%w: schema bootstrap supports the %s driver only, got %s",
			shared.ErrInvalidConfig, shared.DriverSQLite, config.Database.Driver)
	}

	db, err := shared.NewDatabase(config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database: %w", err)
	}
	return db, config, nil
}

// SetupDatabase creates the catalog schema and seeds the genre and media type lookups.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	db, config, err := r.openBootstrapDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running schema bootstrap", "path", config.Database.Path)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return r.writePlain("✓ Database ready at %s\n", config.Database.Path)
}

// SetupRollback reverts the most recently applied schema step.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, config, err := r.openBootstrapDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to rollback: %w", err)
	}

	r.logger.Info("rolled back schema step", "path", config.Database.Path)
	return r.writePlain("✓ Rolled back latest schema step for %s\n", config.Database.Path)
}

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if _, err := os.Stat(path); err == nil {
		if !cmd.Bool("force") {
			return fmt.Errorf("%w: %s already exists, use --force to overwrite", shared.ErrInvalidArgument, path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Config written to %s\n", path)
}
