package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/nav-tracker/internal/config"
	"github.com/pfrederiksen/nav-tracker/internal/logger"
	"github.com/pfrederiksen/nav-tracker/internal/scraper"
	"github.com/pfrederiksen/nav-tracker/internal/storage"
	"github.com/pfrederiksen/nav-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUpdated = 2
)

var (
	flagDataFile string
	flagFunds    string
	flagFormat   string
	flagDryRun   bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav-tracker",
		Short: "Track daily NAVs for RBC GAM mutual funds",
		Long: `A CLI tool that scrapes the daily NAV and % change for a fixed set of
mutual funds from their public detail pages and appends to a JSON history,
adding an entry only when a fund's NAV actually changed.`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "Path to the fund history JSON (default data.json, env NAV_DATA_FILE)")
	cmd.PersistentFlags().StringVar(&flagFunds, "funds", "", "Override tracked funds: CODE=Name,CODE=Name")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run the check without persisting the store")

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newMarketCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// loadConfig resolves configuration from the environment plus CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if flagDataFile != "" {
		cfg.DataFile = flagDataFile
	}
	if flagFunds != "" {
		funds, err := config.ParseFunds(flagFunds)
		if err != nil {
			return nil, fmt.Errorf("parsing --funds: %w", err)
		}
		cfg.Funds = funds
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	return cfg, nil
}

// outputFormat validates the --format flag.
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// checkOnce runs one complete tracker pass and returns its result.
func checkOnce(cfg *config.Config) (*tracker.RunResult, error) {
	store, err := storage.New(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	tr := tracker.New(scraper.New(), store, cfg.Funds, cfg.Location)
	tr.SetDryRun(flagDryRun)
	return tr.Run()
}

// runCheck is the root command logic: one scrape run across all funds.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	result, err := checkOnce(cfg)
	if err != nil {
		return err
	}

	if err := WriteRunResult(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Updated > 0 {
		os.Exit(ExitUpdated)
	}
	os.Exit(ExitSuccess)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
