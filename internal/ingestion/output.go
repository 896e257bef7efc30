package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/types"
)

// Artifact file names written by the ingest step and consumed by the
// downstream analysis steps.
const (
	DatasetFileName = "dataset.json"
	SummaryFileName = "ingest.meta.json"
)

// WriteOutput writes the ingested dataset and its summary to outDir so
// the CLI steps can compose through the filesystem.
func WriteOutput(outDir string, ds *types.Dataset, summary *Summary) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dsBytes, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, DatasetFileName), dsBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	metaBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, SummaryFileName), metaBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}

// LoadDataset reads a dataset artifact written by WriteOutput.
func LoadDataset(path string) (*types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Source: path, Message: "failed to read dataset", Cause: err}
	}

	var ds types.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, &ReadError{Source: path, Message: "failed to parse dataset JSON", Cause: err}
	}
	return &ds, nil
}
