// Package cmd provides CLI commands for lazyspender.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/cache"
	"github.com/lazyspender/lazyspender-go/pkg/config"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lazyspender",
	Short: "Track personal spending against a LazySpender server",
	Long: `lazyspender is a CLI companion to the LazySpender personal finance
service.

It supports:
- Browsing the paginated transaction list
- Recording, editing and deleting transactions
- Balance trend charts over configurable periods
- Managing planned (recurring) payments
- Exporting transactions to a local SQLite ledger

Example:
  lazyspender records --pages 3
  lazyspender add --account Cash --category Food --amount 250 --type EXPENSE
  lazyspender trend --period LAST_12_WEEKS`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(plannedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration shared by all
// commands.
func loadConfig(required ...string) *config.Config {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(required...); err != nil {
		exitOnError(err, "invalid configuration")
	}
	return cfg
}

// newClient builds an API client from the configuration.
func newClient(cfg *config.Config) *lazyspender.Client {
	return lazyspender.NewClient(lazyspender.ClientConfig{
		APIURL:  cfg.APIURL,
		Owner:   cfg.Owner,
		Timeout: 30 * time.Second,
	})
}

// newCaches wires the transaction cache, the trend cache and the
// invalidation graph between them over one API client.
func newCaches(cfg *config.Config) (*cache.Store, *cache.TrendCache) {
	client := newClient(cfg)
	graph := cache.NewGraph()
	store := cache.NewStore(client, graph)
	trends := cache.NewTrendCache(client, graph)
	return store, trends
}

// parseCLIDate accepts YYYY-MM-DD or full RFC 3339 timestamps.
func parseCLIDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}
