package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/skillgenome/genome/internal/riskzone"
	"github.com/spf13/cobra"
)

var riskZonesCmd = &cobra.Command{
	Use:   "risk-zones",
	Short: "Detect regions whose dominant skills are declining",
	Long:  "Score each region by the fraction of its well-supported skills with a declining trend and write the ranked risk zones.",
	RunE:  runRiskZones,
}

var (
	riskIn         string
	riskOut        string
	riskMinSupport int
)

func init() {
	riskZonesCmd.Flags().StringVarP(&riskIn, "in", "i", "", "Directory containing the cleaned dataset (required)")
	riskZonesCmd.Flags().StringVarP(&riskOut, "out", "o", "", "Output directory (required)")
	riskZonesCmd.Flags().IntVar(&riskMinSupport, "min-support", riskzone.DefaultMinSkillSupport, "Regional record support a skill needs to be scored")

	riskZonesCmd.MarkFlagRequired("in")
	riskZonesCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(riskZonesCmd)
}

func runRiskZones(_ *cobra.Command, _ []string) error {
	ds, err := ingestion.LoadDataset(filepath.Join(riskIn, ingestion.DatasetFileName))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	zones := riskzone.Detect(ds, riskzone.Options{MinSkillSupport: riskMinSupport})
	if err := writeArtifact(riskOut, "risk_zones.json", "risk_zones.schema.json", zones); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Scored %d regions\n", len(zones))
	fmt.Fprintf(os.Stdout, "Risk zones: %s/risk_zones.json\n", riskOut)

	return nil
}
