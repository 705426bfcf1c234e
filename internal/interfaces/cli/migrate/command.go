// Package migrate is the schema migration command.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixdesk/internal/infrastructure/config"
	"fixdesk/internal/infrastructure/database"
	"fixdesk/internal/infrastructure/migration"
	"fixdesk/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema management",
		Long:  `Bring the database schema up to date with the registered models.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newUpCommand())

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending schema changes",
		RunE:  runUp,
	}
}

func initEnv() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := initEnv(); err != nil {
		return err
	}
	defer database.Close()

	log := logger.WithComponent("migrate")
	log.Info("running migrations", "environment", env)

	if err := migration.AutoMigrate(database.Get()); err != nil {
		log.Error("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("migrations completed successfully")
	return nil
}
