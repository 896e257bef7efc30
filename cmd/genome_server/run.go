package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skillgenome/genome/internal/config"
	"github.com/skillgenome/genome/internal/db"
	"github.com/skillgenome/genome/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline end-to-end",
	Long: `Orchestrates the entire analysis: ingestion -> bot filtering -> skill graph + region clusters + forecasts + risk zones.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runCSV          string
	runHTML         string
	runURL          string
	runOut          string
	runPostsPerDay  float64
	runDupRatio     float64
	runClusterCount int
	runHorizon      int
	runMinSupport   int
	runVerbose      bool
	runDatabaseURL  string
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runCSV, "csv", "c", "", "Path to CSV dataset (mutually exclusive with --url and --html)")
	runCommand.Flags().StringVar(&runHTML, "html", "", "Path to HTML file containing the dataset table")
	runCommand.Flags().StringVarP(&runURL, "url", "u", "", "URL to fetch the dataset from")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "", "Directory to write the result artifacts to (optional)")

	runCommand.Flags().Float64Var(&runPostsPerDay, "posts-per-day", 0, "Posts-per-day bot threshold")
	runCommand.Flags().Float64Var(&runDupRatio, "dup-ratio", 0, "Duplicate-text ratio bot threshold")
	runCommand.Flags().IntVar(&runClusterCount, "k", 0, "Region cluster count")
	runCommand.Flags().IntVar(&runHorizon, "horizon", 0, "Forecast horizon in weeks")
	runCommand.Flags().IntVar(&runMinSupport, "min-support", 0, "Regional skill support for risk scoring")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage summaries")

	// Database URL for run persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
		if runVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// CLI flags override config file values.
	if cmd.Flags().Changed("csv") {
		cfg.DataPath = runCSV
	}
	if cmd.Flags().Changed("url") {
		cfg.DataURL = runURL
	}
	if cmd.Flags().Changed("posts-per-day") {
		cfg.BotPostsPerDayThreshold = runPostsPerDay
	}
	if cmd.Flags().Changed("dup-ratio") {
		cfg.BotDuplicateTextThreshold = runDupRatio
	}
	if cmd.Flags().Changed("k") {
		cfg.ClusterCount = runClusterCount
	}
	if cmd.Flags().Changed("horizon") {
		cfg.ForecastHorizonWeeks = runHorizon
	}
	if cmd.Flags().Changed("min-support") {
		cfg.MinSkillSupport = runMinSupport
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	} else if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.Options{
		CSVPath:  cfg.DataPath,
		HTMLPath: runHTML,
		URL:      cfg.DataURL,
		Config:   cfg,
		Verbose:  runVerbose,
		Out:      os.Stdout,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		opts.Database = database
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if runOut != "" {
		if err := writeRunArtifacts(runOut, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Artifacts written to %s\n", runOut)
	}

	if opts.Database != nil {
		fmt.Fprintf(os.Stdout, "Run persisted: %s\n", result.RunID)
	}
	fmt.Fprintf(os.Stdout, "Analysis complete: %d records, %d bot users removed\n",
		result.Overview.TotalRecords, result.Stats.BotsDetected)

	return nil
}

// writeRunArtifacts dumps every stage result as a JSON artifact.
func writeRunArtifacts(outDir string, result *pipeline.Result) error {
	artifacts := []struct {
		name   string
		schema string
		value  any
	}{
		{"ingest_summary.json", "", result.Summary},
		{"filter_stats.json", "filter_stats.schema.json", result.Stats},
		{"overview.json", "overview.schema.json", result.Overview},
		{"graph_summary.json", "graph_summary.schema.json", result.Graph},
		{"region_clusters.json", "region_clusters.schema.json", result.Clusters},
		{"forecasts.json", "", result.Forecasts},
		{"risk_zones.json", "risk_zones.schema.json", result.RiskZones},
	}
	for _, a := range artifacts {
		if err := writeArtifact(outDir, a.name, a.schema, a.value); err != nil {
			return err
		}
	}
	return nil
}
