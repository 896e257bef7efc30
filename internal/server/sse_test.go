package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgenome/genome/internal/config"
	"github.com/skillgenome/genome/internal/pipeline"
)

func TestSSEWriter_WriteEvent(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	require.NoError(t, sse.WriteEvent("progress", map[string]string{"step": "filter_stats"}))

	body := rec.Body.String()
	assert.Contains(t, body, "event: progress\n")
	assert.Contains(t, body, `data: {"step":"filter_stats"}`)
	assert.True(t, rec.Flushed)
}

func TestSSEWriter_WriteComplete(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	sse.WriteComplete("abc-123", "completed")

	body := rec.Body.String()
	assert.Contains(t, body, "event: complete\n")
	assert.Contains(t, body, `"run_id":"abc-123"`)
	assert.Contains(t, body, `"status":"completed"`)
}

func TestSSEWriter_WriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	sse.WriteError("ingestion failed")
	assert.Contains(t, rec.Body.String(), `{"error":"ingestion failed"}`)
}

// requireWellFormedFrames parses an SSE body and fails on any
// interleaved or truncated frame.
func requireWellFormedFrames(t *testing.T, body string) []string {
	t.Helper()
	var events []string
	for _, frame := range strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n") {
		lines := strings.Split(frame, "\n")
		require.Len(t, lines, 2, "frame: %q", frame)
		require.True(t, strings.HasPrefix(lines[0], "event: "), "frame: %q", frame)
		require.True(t, strings.HasPrefix(lines[1], "data: "), "frame: %q", frame)
		require.True(t, json.Valid([]byte(strings.TrimPrefix(lines[1], "data: "))), "frame: %q", frame)
		events = append(events, strings.TrimPrefix(lines[0], "event: "))
	}
	return events
}

func TestSSEWriter_ConcurrentWrites(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, sse.WriteEvent("progress", map[string]string{
					"message": fmt.Sprintf("writer %d event %d", n, j),
				}))
			}
		}(i)
	}
	wg.Wait()

	events := requireWellFormedFrames(t, rec.Body.String())
	assert.Len(t, events, 200)
}

func TestSSEWriter_PipelineProgress(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "posts.csv")
	var b strings.Builder
	b.WriteString("user_id,region,timestamp,source,raw_text,skill_tags,engagement\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "user-%d,North,2025-01-%02d,forum,learning go,go;sql,3\n", i, 6+i)
	}
	require.NoError(t, os.WriteFile(csvPath, []byte(b.String()), 0o644))

	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	_, err = pipeline.Run(context.Background(), pipeline.Options{
		CSVPath: csvPath,
		Config:  config.Defaults(),
		Progress: func(step, category, message string) {
			sse.WriteEvent("progress", map[string]string{ //nolint:errcheck
				"step":     step,
				"category": category,
				"message":  message,
			})
		},
	})
	require.NoError(t, err)

	events := requireWellFormedFrames(t, rec.Body.String())
	assert.Len(t, events, 6, "one progress frame per pipeline stage")
	for _, e := range events {
		assert.Equal(t, "progress", e)
	}
}
