package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepIngestSummary,
		StepFilterStats,
		StepOverview,
		StepGraphSummary,
		StepRegionClusters,
		StepForecasts,
		StepRiskZones,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Source:       "data/skillgenome_ready_dataset.csv",
		Status:       StatusRunning,
		TotalRecords: 1200,
	}

	assert.Equal(t, "data/skillgenome_ready_dataset.csv", run.Source)
	assert.Equal(t, "running", run.Status)
	assert.Equal(t, 1200, run.TotalRecords)
	assert.Nil(t, run.CompletedAt)
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "analysis_runs")
	assert.Contains(t, schemaSQL, "artifacts")
	assert.Contains(t, schemaSQL, "users")
}
