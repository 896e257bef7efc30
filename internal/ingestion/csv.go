package ingestion

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skillgenome/genome/internal/types"
)

// RequiredColumns are the columns every input source must provide.
var RequiredColumns = []string{
	"user_id",
	"region",
	"timestamp",
	"source",
	"raw_text",
	"skill_tags",
	"engagement",
}

// timestampLayouts are tried in order when parsing record timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Summary carries metadata about one ingestion pass.
type Summary struct {
	Source        string    `json:"source"`
	IngestionType string    `json:"ingestion_type"`
	RowsRead      int       `json:"rows_read"`
	RowsDropped   int       `json:"rows_dropped"`
	RowsIngested  int       `json:"rows_ingested"`
	IngestedAt    time.Time `json:"ingested_at"`
}

// IngestCSVFile reads and normalizes a CSV dataset from disk.
func IngestCSVFile(path string) (*types.Dataset, *Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ReadError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return ingestCSV(f, path, "csv")
}

// IngestCSV reads and normalizes a CSV dataset from a reader.
func IngestCSV(r io.Reader, source string) (*types.Dataset, *Summary, error) {
	return ingestCSV(r, source, "csv")
}

func ingestCSV(r io.Reader, source, ingestionType string) (*types.Dataset, *Summary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &ReadError{Source: source, Message: "failed to read header", Cause: err}
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{MissingColumns: missing}
	}

	ingestedAt := time.Now().UTC()
	summary := &Summary{
		Source:        source,
		IngestionType: ingestionType,
		IngestedAt:    ingestedAt,
	}

	var records []types.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &ReadError{Source: source, Message: "failed to read row", Cause: err}
		}
		summary.RowsRead++

		rec, ok := normalizeRow(func(col string) string {
			idx := colIndex[col]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}, ingestedAt, ingestionType)
		if !ok {
			summary.RowsDropped++
			continue
		}
		records = append(records, rec)
	}
	summary.RowsIngested = len(records)

	return types.NewDataset(records), summary, nil
}

// normalizeRow builds a Record from a column accessor. Rows with
// unparseable timestamps or a blank user_id or region are dropped
// rather than failing the whole ingestion.
func normalizeRow(get func(string) string, ingestedAt time.Time, ingestionType string) (types.Record, bool) {
	ts, ok := parseTimestamp(get("timestamp"))
	if !ok {
		return types.Record{}, false
	}

	userID := strings.TrimSpace(get("user_id"))
	region := strings.TrimSpace(get("region"))
	if userID == "" || region == "" {
		return types.Record{}, false
	}

	engagement, err := strconv.ParseFloat(strings.TrimSpace(get("engagement")), 64)
	if err != nil {
		engagement = 0
	}

	return types.Record{
		UserID:        userID,
		Region:        region,
		Timestamp:     ts,
		Source:        strings.ToLower(strings.TrimSpace(get("source"))),
		RawText:       get("raw_text"),
		SkillTags:     types.ParseSkillTags(get("skill_tags")),
		Engagement:    engagement,
		IngestedAt:    ingestedAt,
		IngestionType: ingestionType,
	}, true
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
