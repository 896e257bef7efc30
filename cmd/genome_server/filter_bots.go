package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/botfilter"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/spf13/cobra"
)

var filterBotsCmd = &cobra.Command{
	Use:   "filter-bots",
	Short: "Remove bot-like users from an ingested dataset",
	Long:  "Apply the posting-rate and duplicate-text rules to an ingested dataset, writing the cleaned dataset and filter stats.",
	RunE:  runFilterBots,
}

var (
	filterIn          string
	filterOut         string
	filterPostsPerDay float64
	filterDupRatio    float64
)

func init() {
	filterBotsCmd.Flags().StringVarP(&filterIn, "in", "i", "", "Directory containing the ingested dataset (required)")
	filterBotsCmd.Flags().StringVarP(&filterOut, "out", "o", "", "Output directory (required)")
	filterBotsCmd.Flags().Float64Var(&filterPostsPerDay, "posts-per-day", botfilter.DefaultPostsPerDayThreshold, "Posts-per-day threshold")
	filterBotsCmd.Flags().Float64Var(&filterDupRatio, "dup-ratio", botfilter.DefaultDuplicateTextThreshold, "Duplicate-text ratio threshold")

	filterBotsCmd.MarkFlagRequired("in")
	filterBotsCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(filterBotsCmd)
}

func runFilterBots(_ *cobra.Command, _ []string) error {
	ds, err := ingestion.LoadDataset(filepath.Join(filterIn, ingestion.DatasetFileName))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	cleaned, stats := botfilter.Apply(ds, botfilter.Options{
		PostsPerDayThreshold:   filterPostsPerDay,
		DuplicateTextThreshold: filterDupRatio,
	})

	if err := writeArtifact(filterOut, ingestion.DatasetFileName, "", cleaned); err != nil {
		return err
	}
	if err := writeArtifact(filterOut, "filter_stats.json", "filter_stats.schema.json", stats); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Removed %d bot users of %d (%.2f%%)\n",
		stats.BotsDetected, stats.TotalUsers, stats.PercentRemoved)
	fmt.Fprintf(os.Stdout, "Cleaned dataset: %s/%s\n", filterOut, ingestion.DatasetFileName)
	fmt.Fprintf(os.Stdout, "Filter stats: %s/filter_stats.json\n", filterOut)

	return nil
}
