package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/skillgenome/genome/internal/types"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a skill activity dataset from a CSV file, HTML table, or URL",
	Long:  "Ingest raw activity records, normalize them, and write the dataset plus an ingestion summary to the output directory.",
	RunE:  runIngest,
}

var (
	ingestCSV  string
	ingestHTML string
	ingestURL  string
	ingestOut  string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestCSV, "csv", "c", "", "Path to CSV dataset")
	ingestCmd.Flags().StringVar(&ingestHTML, "html", "", "Path to HTML file containing the dataset table")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the dataset from")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Output directory (required)")

	ingestCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	set := 0
	for _, s := range []string{ingestCSV, ingestHTML, ingestURL} {
		if s != "" {
			set++
		}
	}
	if set == 0 {
		return fmt.Errorf("one of --csv, --html, or --url must be provided")
	}
	if set > 1 {
		return fmt.Errorf("--csv, --html, and --url are mutually exclusive; provide only one")
	}

	var (
		ds      *types.Dataset
		summary *ingestion.Summary
		err     error
	)
	switch {
	case ingestCSV != "":
		ds, summary, err = ingestion.IngestCSVFile(ingestCSV)
	case ingestHTML != "":
		ds, summary, err = ingestion.IngestHTMLTableFile(ingestHTML)
	default:
		ds, summary, err = ingestion.IngestFromURL(context.Background(), ingestURL)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest dataset: %w", err)
	}

	if err := ingestion.WriteOutput(ingestOut, ds, summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Successfully ingested %d records (%d dropped)\n", summary.RowsIngested, summary.RowsDropped)
	fmt.Fprintf(os.Stdout, "Dataset: %s/%s\n", ingestOut, ingestion.DatasetFileName)
	fmt.Fprintf(os.Stdout, "Summary: %s/%s\n", ingestOut, ingestion.SummaryFileName)

	return nil
}
