package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgenome/genome/internal/ingestion"
	"github.com/skillgenome/genome/internal/types"
)

func TestRunFilterBots(t *testing.T) {
	outDir := writeFilteredDir(t)

	ds, err := ingestion.LoadDataset(filepath.Join(outDir, ingestion.DatasetFileName))
	require.NoError(t, err)
	for _, r := range ds.Records {
		assert.NotEqual(t, "spam", r.UserID)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "filter_stats.json"))
	require.NoError(t, err)

	var stats types.FilterStats
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, 1, stats.BotsDetected)
	assert.Equal(t, 7, stats.TotalUsers)
}

func TestRunFilterBots_MissingInput(t *testing.T) {
	filterIn = t.TempDir()
	filterOut = t.TempDir()

	assert.Error(t, runFilterBots(filterBotsCmd, nil))
}
