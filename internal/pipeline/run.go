// Package pipeline orchestrates the full analysis: ingestion, bot
// filtering, and the parallel analytics stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"
	"github.com/skillgenome/genome/internal/botfilter"
	"github.com/skillgenome/genome/internal/clustering"
	"github.com/skillgenome/genome/internal/config"
	"github.com/skillgenome/genome/internal/db"
	"github.com/skillgenome/genome/internal/forecast"
	"github.com/skillgenome/genome/internal/graph"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/skillgenome/genome/internal/observability"
	"github.com/skillgenome/genome/internal/riskzone"
	"github.com/skillgenome/genome/internal/types"
)

// ProgressFunc receives step-level progress events, used by the SSE
// streaming endpoint.
type ProgressFunc func(step, category, message string)

// Options configures a pipeline run. Exactly one of CSVPath, HTMLPath,
// or URL must be set.
type Options struct {
	CSVPath  string
	HTMLPath string
	URL      string

	Config config.Config

	// Database is optional; when set, the run and its artifacts are
	// persisted.
	Database *db.DB

	Verbose  bool
	Out      io.Writer
	Progress ProgressFunc
}

// Result carries every stage's output.
type Result struct {
	RunID     uuid.UUID               `json:"run_id,omitempty"`
	Summary   *ingestion.Summary      `json:"ingest_summary"`
	Dataset   *types.Dataset          `json:"-"`
	Stats     *types.FilterStats      `json:"filter_stats"`
	Overview  *types.OverviewStats    `json:"overview"`
	Graph     *types.GraphSummary     `json:"graph_summary"`
	Clusters  []types.RegionCluster   `json:"region_clusters"`
	Forecasts []*types.ForecastResult `json:"forecasts"`
	RiskZones []types.RiskZone        `json:"risk_zones"`
}

func (o *Options) emit(step, category, message string) {
	if o.Progress != nil {
		o.Progress(step, category, message)
	}
}

// Run executes the full analysis pipeline.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validateSource(&opts); err != nil {
		return nil, err
	}
	cfg := opts.Config.MergeWithDefaults(config.Defaults())

	var printer *observability.Printer
	if opts.Verbose && opts.Out != nil {
		printer = observability.NewPrinter(opts.Out)
	}

	// Stage 1: ingestion.
	ds, summary, err := ingest(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	opts.emit(db.StepIngestSummary, db.CategoryIngestion,
		fmt.Sprintf("Ingested %d records from %s", ds.Len(), summary.Source))

	var runID uuid.UUID
	if opts.Database != nil {
		runID, err = opts.Database.CreateRun(ctx, summary.Source, ds.Len())
		if err != nil {
			return nil, fmt.Errorf("failed to create database run: %w", err)
		}
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepIngestSummary, db.CategoryIngestion, summary)
	}

	// Stage 2: bot filtering.
	cleaned, stats := botfilter.Apply(ds, botfilter.Options{
		PostsPerDayThreshold:   cfg.BotPostsPerDayThreshold,
		DuplicateTextThreshold: cfg.BotDuplicateTextThreshold,
	})
	if printer != nil {
		printer.PrintFilterStats(stats)
	}
	opts.emit(db.StepFilterStats, db.CategoryFiltering,
		fmt.Sprintf("Removed %d bot users (%.2f%%)", stats.BotsDetected, stats.PercentRemoved))
	if opts.Database != nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepFilterStats, db.CategoryFiltering, stats)
	}

	result := &Result{
		RunID:   runID,
		Summary: summary,
		Dataset: cleaned,
		Stats:   stats,
		Overview: &types.OverviewStats{
			TotalRecords: cleaned.Len(),
			TotalUsers:   cleaned.UserCount(),
			TotalRegions: cleaned.RegionCount(),
			TotalSkills:  cleaned.SkillCount(),
		},
	}
	if printer != nil {
		printer.PrintOverview(result.Overview)
	}

	// Stage 3: analytics branches run in parallel; they only read the
	// cleaned dataset.
	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		summary := graph.Build(cleaned).Summary()
		mu.Lock()
		result.Graph = summary
		mu.Unlock()
		opts.emit(db.StepGraphSummary, db.CategoryAnalytics,
			fmt.Sprintf("Built skill graph: %d top skills", len(summary.TopSkills)))
		return gCtx.Err()
	})

	g.Go(func() error {
		clusters := clustering.ClusterRegions(cleaned, cfg.ClusterCount)
		mu.Lock()
		result.Clusters = clusters
		mu.Unlock()
		opts.emit(db.StepRegionClusters, db.CategoryAnalytics,
			fmt.Sprintf("Clustered %d regions", len(clusters)))
		return gCtx.Err()
	})

	g.Go(func() error {
		forecasts := forecast.TopSkills(cleaned, cfg.TopSkillForecasts, cfg.ForecastHorizonWeeks)
		mu.Lock()
		result.Forecasts = forecasts
		mu.Unlock()
		opts.emit(db.StepForecasts, db.CategoryAnalytics,
			fmt.Sprintf("Forecast %d skills", len(forecasts)))
		return gCtx.Err()
	})

	g.Go(func() error {
		zones := riskzone.Detect(cleaned, riskzone.Options{MinSkillSupport: cfg.MinSkillSupport})
		mu.Lock()
		result.RiskZones = zones
		mu.Unlock()
		opts.emit(db.StepRiskZones, db.CategoryAnalytics,
			fmt.Sprintf("Detected %d risk-scored regions", len(zones)))
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		if opts.Database != nil {
			_ = opts.Database.CompleteRun(ctx, runID, db.StatusFailed, stats.BotsDetected)
		}
		return nil, err
	}

	if printer != nil {
		printer.PrintGraphSummary(result.Graph)
		printer.PrintClusters(result.Clusters)
		for _, f := range result.Forecasts {
			printer.PrintForecast(f)
		}
		printer.PrintRiskZones(result.RiskZones)
	}

	if opts.Database != nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepOverview, db.CategoryAnalytics, result.Overview)
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepGraphSummary, db.CategoryAnalytics, result.Graph)
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepRegionClusters, db.CategoryAnalytics, result.Clusters)
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepForecasts, db.CategoryAnalytics, result.Forecasts)
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepRiskZones, db.CategoryAnalytics, result.RiskZones)
		if err := opts.Database.CompleteRun(ctx, runID, db.StatusCompleted, stats.BotsDetected); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func validateSource(opts *Options) error {
	set := 0
	for _, s := range []string{opts.CSVPath, opts.HTMLPath, opts.URL} {
		if s != "" {
			set++
		}
	}
	if set == 0 {
		return fmt.Errorf("no data source configured: set a CSV path, HTML path, or URL")
	}
	if set > 1 {
		return fmt.Errorf("data sources are mutually exclusive; provide only one")
	}
	return nil
}

func ingest(ctx context.Context, opts *Options) (*types.Dataset, *ingestion.Summary, error) {
	switch {
	case opts.CSVPath != "":
		return ingestion.IngestCSVFile(opts.CSVPath)
	case opts.HTMLPath != "":
		return ingestion.IngestHTMLTableFile(opts.HTMLPath)
	default:
		return ingestion.IngestFromURL(ctx, opts.URL)
	}
}
