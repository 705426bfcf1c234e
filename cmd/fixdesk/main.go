package main

import (
	"os"

	"github.com/spf13/cobra"

	"fixdesk/internal/interfaces/cli/migrate"
	"fixdesk/internal/interfaces/cli/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fixdesk",
		Short: "FixDesk - repair ticket data layer",
		Long:  `FixDesk manages the repair shop database: schema migration, seeding, and administrative commands.`,
	}

	rootCmd.AddCommand(
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
