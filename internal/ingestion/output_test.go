package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutputAndLoadDataset(t *testing.T) {
	dir := t.TempDir()

	ds, summary, err := IngestCSV(strings.NewReader(sampleCSV), "test.csv")
	require.NoError(t, err)

	require.NoError(t, WriteOutput(dir, ds, summary))

	loaded, err := LoadDataset(filepath.Join(dir, DatasetFileName))
	require.NoError(t, err)
	require.Equal(t, ds.Len(), loaded.Len())
	assert.Equal(t, ds.Records[0].UserID, loaded.Records[0].UserID)
	assert.Equal(t, ds.Records[0].SkillTags, loaded.Records[0].SkillTags)
	assert.True(t, ds.Records[0].Timestamp.Equal(loaded.Records[0].Timestamp))

	assert.FileExists(t, filepath.Join(dir, SummaryFileName))
}

func TestLoadDataset_NotFound(t *testing.T) {
	_, err := LoadDataset("/nonexistent/dataset.json")
	require.Error(t, err)

	var readErr *ReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestLoadDataset_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dataset JSON")
}
