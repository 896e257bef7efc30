package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/forecast"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast weekly skill trends",
	Long:  "Fit a linear trend to a skill's weekly mention counts and extrapolate it. Without --skill, the most frequent skills are forecast.",
	RunE:  runForecast,
}

var (
	forecastIn      string
	forecastOut     string
	forecastSkill   string
	forecastHorizon int
	forecastTop     int
)

func init() {
	forecastCmd.Flags().StringVarP(&forecastIn, "in", "i", "", "Directory containing the cleaned dataset (required)")
	forecastCmd.Flags().StringVarP(&forecastOut, "out", "o", "", "Output directory (required)")
	forecastCmd.Flags().StringVarP(&forecastSkill, "skill", "s", "", "Skill to forecast (defaults to the top skills)")
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", forecast.DefaultHorizonWeeks, "Forecast horizon in weeks")
	forecastCmd.Flags().IntVar(&forecastTop, "top", 10, "Number of top skills to forecast when --skill is not set")

	forecastCmd.MarkFlagRequired("in")
	forecastCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	if forecastHorizon < 1 {
		return fmt.Errorf("--horizon must be at least 1")
	}

	ds, err := ingestion.LoadDataset(filepath.Join(forecastIn, ingestion.DatasetFileName))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if forecastSkill != "" {
		result := forecast.Skill(ds, forecastSkill, forecastHorizon)
		if err := writeArtifact(forecastOut, "forecast.json", "forecast.schema.json", result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Forecast %q: trend %s\n", result.Skill, result.Trend)
		fmt.Fprintf(os.Stdout, "Forecast: %s/forecast.json\n", forecastOut)
		return nil
	}

	results := forecast.TopSkills(ds, forecastTop, forecastHorizon)
	if err := writeArtifact(forecastOut, "forecasts.json", "", results); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Forecast %d skills\n", len(results))
	fmt.Fprintf(os.Stdout, "Forecasts: %s/forecasts.json\n", forecastOut)

	return nil
}
