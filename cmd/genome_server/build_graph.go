package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/graph"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/spf13/cobra"
)

var buildGraphCmd = &cobra.Command{
	Use:   "build-graph",
	Short: "Build the skill co-occurrence graph",
	Long:  "Build the skill co-occurrence graph from a cleaned dataset and write the top skills and strongest pairs.",
	RunE:  runBuildGraph,
}

var (
	graphIn  string
	graphOut string
)

func init() {
	buildGraphCmd.Flags().StringVarP(&graphIn, "in", "i", "", "Directory containing the cleaned dataset (required)")
	buildGraphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Output directory (required)")

	buildGraphCmd.MarkFlagRequired("in")
	buildGraphCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(buildGraphCmd)
}

func runBuildGraph(_ *cobra.Command, _ []string) error {
	ds, err := ingestion.LoadDataset(filepath.Join(graphIn, ingestion.DatasetFileName))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	g := graph.Build(ds)
	if err := writeArtifact(graphOut, "graph_summary.json", "graph_summary.schema.json", g.Summary()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Built graph: %d skills, %d edges\n", g.NodeCount(), g.EdgeCount())
	fmt.Fprintf(os.Stdout, "Graph summary: %s/graph_summary.json\n", graphOut)

	return nil
}
