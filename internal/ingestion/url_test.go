package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestFromURL_CSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	ds, summary, err := IngestFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, "url", summary.IngestionType)
	assert.Equal(t, "url", ds.Records[0].IngestionType)
}

func TestIngestFromURL_HTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(sampleHTML))
	}))
	defer srv.Close()

	ds, summary, err := IngestFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "url", summary.IngestionType)
	assert.Equal(t, "url", ds.Records[0].IngestionType)
}

func TestIngestFromURL_UnsupportedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	_, _, err := IngestFromURL(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedContent)
}

func TestIngestFromURL_RequestFailure(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "http://127.0.0.1:1/none")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
