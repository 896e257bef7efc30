package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeDatasetDir ingests a generated CSV into a fresh directory and
// returns it. The data has two regions with distinct skill profiles,
// several weeks of history, and one obvious spam account.
func writeDatasetDir(t *testing.T) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("user_id,region,timestamp,source,raw_text,skill_tags,engagement\n")
	for week := 0; week < 5; week++ {
		day := 6 + 7*week
		northTS := time.Date(2025, time.January, day, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
		southTS := time.Date(2025, time.January, day, 11, 0, 0, 0, time.UTC).Format(time.RFC3339)
		for i := 0; i <= week; i++ {
			sb.WriteString(fmt.Sprintf("north-%d,North,%s,forum,go post %d.%d,go;sql,4\n",
				i, northTS, week, i))
		}
		sb.WriteString(fmt.Sprintf("south-0,South,%s,blog,farm report %d,farming,2\n",
			southTS, week))
	}
	for i := 0; i < 50; i++ {
		sb.WriteString(fmt.Sprintf("spam,North,2025-01-06T%02d:%02d:00Z,forum,buy now %d,crypto,0\n",
			i%24, i%60, i))
	}

	csvPath := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sb.String()), 0o644))

	outDir := t.TempDir()
	resetIngestFlags()
	ingestCSV = csvPath
	ingestOut = outDir
	require.NoError(t, runIngest(ingestCmd, nil))
	return outDir
}

// writeFilteredDir runs the bot filter over an ingested directory.
func writeFilteredDir(t *testing.T) string {
	t.Helper()

	outDir := t.TempDir()
	filterIn = writeDatasetDir(t)
	filterOut = outDir
	filterPostsPerDay = 40
	filterDupRatio = 0.75
	require.NoError(t, runFilterBots(filterBotsCmd, nil))
	return outDir
}
