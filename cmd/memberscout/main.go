package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"memberscout/internal/browser"
	"memberscout/internal/config"
	"memberscout/internal/driver"
	"memberscout/internal/export"
	"memberscout/internal/extract"
	"memberscout/internal/fetch"
	"memberscout/internal/scrape"
)

var (
	cfgFile    string
	verbose    bool
	outputPath string
	sheetID    string
	retryCount int
	fetchMode  string
	snapshots  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "memberscout",
		Short: "memberscout — paginated member directory scraper",
		Long: `memberscout walks a paginated member directory, visits every profile
page it links to, extracts the labeled member fields and publishes the
records to a CSV file and, optionally, a Google Sheets spreadsheet.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [url]",
		Short: "Scrape the member directory",
		Long:  "Run one full scrape of the directory at the given (or configured) URL and publish the results.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScrape,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output file path")
	cmd.Flags().StringVar(&sheetID, "sheet-id", "", "Google Sheets spreadsheet ID (enables the sheets sink)")
	cmd.Flags().IntVarP(&retryCount, "retries", "r", 0, "whole-run attempts before giving up (0 = use config)")
	cmd.Flags().StringVar(&fetchMode, "fetch-mode", "", "profile fetch mode: browser or http")
	cmd.Flags().BoolVar(&snapshots, "snapshots", false, "write diagnostic page screenshots")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg, args)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sinks are built before any scraping so a bad credential file fails
	// the run up front.
	csvSink := export.NewCSVSink(cfg.Export.CSV.Path, logger)

	var bestEffort []export.Sink
	if cfg.Export.Sheets.Enabled {
		sheetsSink, err := export.NewSheetsSink(ctx, cfg.Export.Sheets, logger)
		if err != nil {
			return fmt.Errorf("sheets sink: %w", err)
		}
		bestEffort = append(bestEffort, sheetsSink)
	}
	if cfg.Export.Mongo.Enabled {
		mongoSink, err := export.NewMongoSink(ctx, cfg.Export.Mongo, logger)
		if err != nil {
			return fmt.Errorf("mongo sink: %w", err)
		}
		defer func() {
			if cerr := mongoSink.Close(); cerr != nil {
				logger.Warn("mongo disconnect failed", "error", cerr)
			}
		}()
		bestEffort = append(bestEffort, mongoSink)
	}

	logger.Info("starting scrape",
		"target", cfg.Target.URL,
		"fetch_mode", cfg.Scrape.FetchMode,
		"retries", cfg.Scrape.RetryCount,
		"output", cfg.Export.CSV.Path,
		"sheets", cfg.Export.Sheets.Enabled,
	)

	enumerator, err := scrape.NewEnumerator(cfg, logger)
	if err != nil {
		return fmt.Errorf("create enumerator: %w", err)
	}
	extractor := extract.New(cfg.Extract, logger)
	walker := scrape.NewWalker(cfg, extractor, logger)

	factory := func() (driver.Session, error) {
		return browser.NewSession(cfg, logger)
	}

	var opts []driver.Option
	if cfg.Scrape.FetchMode == "http" {
		opts = append(opts, driver.WithVisitor(fetch.NewClient(cfg, logger)))
	}

	d := driver.New(cfg, factory, enumerator, walker, logger, opts...)

	start := time.Now()
	records, err := d.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	publisher := export.NewPublisher(csvSink, bestEffort, logger)
	if err := publisher.Publish(ctx, records); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	logger.Info("run complete",
		"records", len(records),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"output", cfg.Export.CSV.Path,
	)
	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("memberscout %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Target:\n")
			fmt.Printf("  URL:                 %s\n", cfg.Target.URL)
			fmt.Printf("  Profile Pattern:     %s\n", cfg.Target.ProfilePattern)
			fmt.Printf("  Pagination Selector: %s\n", cfg.Target.PaginationSelector)
			fmt.Printf("\nScrape:\n")
			fmt.Printf("  Retry Count:         %d\n", cfg.Scrape.RetryCount)
			fmt.Printf("  Nav Timeout:         %s\n", cfg.Scrape.NavTimeout)
			fmt.Printf("  Settle Duration:     %s\n", cfg.Scrape.SettleDuration)
			fmt.Printf("  Fetch Mode:          %s\n", cfg.Scrape.FetchMode)
			fmt.Printf("  Headless:            %v\n", cfg.Scrape.Headless)
			fmt.Printf("\nExport:\n")
			fmt.Printf("  CSV Path:            %s\n", cfg.Export.CSV.Path)
			fmt.Printf("  Sheets Enabled:      %v\n", cfg.Export.Sheets.Enabled)
			fmt.Printf("  Sheet ID:            %s\n", cfg.Export.Sheets.SheetID)
			fmt.Printf("  Mongo Enabled:       %v\n", cfg.Export.Mongo.Enabled)
			fmt.Printf("\nSnapshot:\n")
			fmt.Printf("  Enabled:             %v\n", cfg.Snapshot.Enabled)
			fmt.Printf("  Dir:                 %s\n", cfg.Snapshot.Dir)
			return nil
		},
	}
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	if cfg.Logging.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config, args []string) {
	if len(args) == 1 {
		cfg.Target.URL = args[0]
	}
	if outputPath != "" {
		cfg.Export.CSV.Path = outputPath
	}
	if sheetID != "" {
		cfg.Export.Sheets.SheetID = sheetID
		cfg.Export.Sheets.Enabled = true
	}
	if retryCount > 0 {
		cfg.Scrape.RetryCount = retryCount
	}
	if fetchMode != "" {
		cfg.Scrape.FetchMode = fetchMode
	}
	if snapshots {
		cfg.Snapshot.Enabled = true
	}
}
