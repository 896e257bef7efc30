package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/clustering"
	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/spf13/cobra"
)

var clusterRegionsCmd = &cobra.Command{
	Use:   "cluster-regions",
	Short: "Group regions by skill profile",
	Long:  "Cluster regions by their skill frequency profiles and write each region's cluster assignment with the cluster's top skills.",
	RunE:  runClusterRegions,
}

var (
	clusterIn  string
	clusterOut string
	clusterK   int
)

func init() {
	clusterRegionsCmd.Flags().StringVarP(&clusterIn, "in", "i", "", "Directory containing the cleaned dataset (required)")
	clusterRegionsCmd.Flags().StringVarP(&clusterOut, "out", "o", "", "Output directory (required)")
	clusterRegionsCmd.Flags().IntVarP(&clusterK, "k", "k", clustering.DefaultClusterCount, "Cluster count (capped at the region count)")

	clusterRegionsCmd.MarkFlagRequired("in")
	clusterRegionsCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(clusterRegionsCmd)
}

func runClusterRegions(_ *cobra.Command, _ []string) error {
	if clusterK < 1 {
		return fmt.Errorf("--k must be at least 1")
	}

	ds, err := ingestion.LoadDataset(filepath.Join(clusterIn, ingestion.DatasetFileName))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	clusters := clustering.ClusterRegions(ds, clusterK)
	if err := writeArtifact(clusterOut, "region_clusters.json", "region_clusters.schema.json", clusters); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Clustered %d regions\n", len(clusters))
	fmt.Fprintf(os.Stdout, "Region clusters: %s/region_clusters.json\n", clusterOut)

	return nil
}
