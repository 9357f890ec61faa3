package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/consultkit/consultkit/internal/interfaces/cli/catalog"
	"github.com/consultkit/consultkit/internal/interfaces/cli/migrate"
	"github.com/consultkit/consultkit/internal/interfaces/cli/server"
)

// @title ConsultKit API
// @version 1.0
// @description AI consulting tools catalog with plans, quotas and usage analytics.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "consultkit",
		Short:        "ConsultKit - AI consulting tools API",
		Long:         `ConsultKit serves a catalog of AI consulting tools with plan-based quotas, plus migration and catalog commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		catalog.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
