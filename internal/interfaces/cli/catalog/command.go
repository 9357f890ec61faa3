// Package catalog provides commands for inspecting the tool catalog offline.
package catalog

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/consultkit/consultkit/internal/infrastructure/catalog"
	"github.com/consultkit/consultkit/internal/infrastructure/config"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

var (
	configPath  string
	catalogPath string
	category    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Tool catalog tools",
		Long:  `Validate and list the tool catalog: the built-in tools merged with the optional override file.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&catalogPath, "file", "", "Override file to merge (default: tools.catalog_path)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog tools",
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&category, "category", "", "Only list tools in this category")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the catalog",
			Long:  `Load the catalog exactly as the server would and report the first invalid entry.`,
			RunE:  runValidate,
		},
		listCmd,
	)

	return cmd
}

func load() (*catalog.Registry, error) {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	path := cfg.Tools.CatalogPath
	if catalogPath != "" {
		path = catalogPath
	}

	return catalog.NewLoader(path, catalog.Defaults{
		Temperature: cfg.Tools.DefaultTemperature,
		MaxTokens:   cfg.Tools.DefaultMaxTokens,
	}, logger.NewLogger()).Load()
}

func runValidate(cmd *cobra.Command, args []string) error {
	registry, err := load()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d tools\n", registry.Len())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tCATEGORY\tPUBLIC\tREQUIRED FIELDS")
	for _, t := range registry.All() {
		if category != "" && !strings.EqualFold(t.Category(), category) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", t.Slug(), t.Category(), t.IsPublic(), strings.Join(t.RequiredFields(), ","))
	}
	return w.Flush()
}
