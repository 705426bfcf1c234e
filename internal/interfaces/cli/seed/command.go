// Package seed bootstraps a fresh installation: the settings singleton, a
// starter catalog, and the first admin account.
package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appcatalog "fixdesk/internal/application/catalog"
	appsettings "fixdesk/internal/application/settings"
	appuser "fixdesk/internal/application/user"
	"fixdesk/internal/infrastructure/auth"
	"fixdesk/internal/infrastructure/config"
	"fixdesk/internal/infrastructure/database"
	"fixdesk/internal/infrastructure/migration"
	"fixdesk/internal/infrastructure/repository"
	apperrors "fixdesk/internal/shared/errors"
	"fixdesk/internal/shared/logger"
)

var (
	env           string
	adminEmail    string
	adminPassword string
)

var starterBrands = []string{"Samsung", "LG", "Whirlpool", "Mabe", "Bosch"}

var starterCategories = []struct {
	Name   string
	Prefix string
}{
	{"Refrigerator", "REF"},
	{"Washer", "WSH"},
	{"Dryer", "DRY"},
	{"Stove", "STV"},
	{"Air Conditioner", "AC"},
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a fresh database",
		Long:  `Create the company settings row, a starter brand and category catalog, and the first admin account.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Email of the first admin account")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Password of the first admin account")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
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
	defer database.Close()

	gdb := database.Get()
	if err := migration.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	ctx := context.Background()
	log := logger.WithComponent("seed")

	settingsSvc := appsettings.NewService(repository.NewSettingsRepository(gdb))
	if _, err := settingsSvc.Get(ctx); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	catalogSvc := appcatalog.NewService(
		repository.NewBrandRepository(gdb),
		repository.NewCategoryRepository(gdb),
	)
	for _, name := range starterBrands {
		_, err := catalogSvc.CreateBrand(ctx, appcatalog.CreateBrandCommand{Name: name})
		if err != nil && !apperrors.IsUniqueViolation(err) {
			return fmt.Errorf("failed to seed brand %q: %w", name, err)
		}
	}
	for _, c := range starterCategories {
		_, err := catalogSvc.CreateCategory(ctx, appcatalog.CreateCategoryCommand{Name: c.Name, Prefix: c.Prefix})
		if err != nil && !apperrors.IsUniqueViolation(err) {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	if adminEmail != "" {
		if adminPassword == "" {
			return fmt.Errorf("--admin-password is required with --admin-email")
		}
		userSvc := appuser.NewService(
			repository.NewUserRepository(gdb),
			auth.NewBcryptPasswordHasher(cfg.Auth.Password),
		)
		_, err := userSvc.Register(ctx, appuser.RegisterCommand{
			Email:    adminEmail,
			Password: adminPassword,
			Role:     "admin",
		})
		if err != nil && !apperrors.IsUniqueViolation(err) {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
	}

	log.Info("seed completed", "environment", env)
	return nil
}
