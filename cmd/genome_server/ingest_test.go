package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgenome/genome/internal/ingestion"
)

const sampleCSV = `user_id,region,timestamp,source,raw_text,skill_tags,engagement
u1,North,2025-01-06T10:00:00Z,forum,learning go,go;sql,5
u2,North,2025-01-13T10:00:00Z,Forum ,more go content,go;docker,3
u3,South,2025-01-06T11:00:00Z,blog,terraform notes,terraform,2
u4,South,not-a-date,blog,dropped row,python,1
`

func writeSampleCSVFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func resetIngestFlags() {
	ingestCSV = ""
	ingestHTML = ""
	ingestURL = ""
	ingestOut = ""
}

func TestRunIngest_CSV(t *testing.T) {
	resetIngestFlags()
	ingestCSV = writeSampleCSVFile(t)
	ingestOut = t.TempDir()

	require.NoError(t, runIngest(ingestCmd, nil))

	ds, err := ingestion.LoadDataset(filepath.Join(ingestOut, ingestion.DatasetFileName))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = os.Stat(filepath.Join(ingestOut, ingestion.SummaryFileName))
	assert.NoError(t, err)
}

func TestRunIngest_NoSource(t *testing.T) {
	resetIngestFlags()
	ingestOut = t.TempDir()

	err := runIngest(ingestCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided")
}

func TestRunIngest_MultipleSources(t *testing.T) {
	resetIngestFlags()
	ingestCSV = "a.csv"
	ingestURL = "http://example.com/data.csv"
	ingestOut = t.TempDir()

	err := runIngest(ingestCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunIngest_MissingFile(t *testing.T) {
	resetIngestFlags()
	ingestCSV = filepath.Join(t.TempDir(), "missing.csv")
	ingestOut = t.TempDir()

	assert.Error(t, runIngest(ingestCmd, nil))
}
