package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/skillgenome/genome/internal/fetch"
	"github.com/skillgenome/genome/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrUnsupportedContent is returned when the fetched content type
	// cannot be ingested.
	ErrUnsupportedContent = fmt.Errorf("unsupported content type")
)

// IngestFromURL fetches a dataset export over HTTP and ingests it.
// CSV responses go through the CSV path; HTML responses are parsed as
// table exports.
func IngestFromURL(ctx context.Context, urlStr string) (*types.Dataset, *Summary, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentType := strings.ToLower(result.ContentType)
	switch {
	case strings.Contains(contentType, "text/html"):
		ds, summary, err := IngestHTMLTable(bytes.NewReader(result.Body), urlStr)
		if err != nil {
			return nil, nil, err
		}
		summary.IngestionType = "url"
		setIngestionType(ds, "url")
		return ds, summary, nil
	case contentType == "" || strings.Contains(contentType, "csv") || strings.Contains(contentType, "text/plain"):
		ds, summary, err := ingestCSV(bytes.NewReader(result.Body), urlStr, "url")
		if err != nil {
			return nil, nil, err
		}
		return ds, summary, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, result.ContentType)
	}
}

func setIngestionType(ds *types.Dataset, ingestionType string) {
	for i := range ds.Records {
		ds.Records[i].IngestionType = ingestionType
	}
}
