package ingestion

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/skillgenome/genome/internal/types"
)

// IngestHTMLTableFile ingests an HTML table export (surveys and portal
// dumps are often only available this way) from disk.
func IngestHTMLTableFile(path string) (*types.Dataset, *Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ReadError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return IngestHTMLTable(f, path)
}

// IngestHTMLTable parses the first <table> in an HTML document. Header
// cells (<th>, or the first row's <td>s) map to the required columns;
// extra columns are ignored.
func IngestHTMLTable(r io.Reader, source string) (*types.Dataset, *Summary, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, &ReadError{Source: source, Message: "failed to parse HTML", Cause: err}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, &ReadError{Source: source, Message: "no table found in document"}
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, nil, &ReadError{Source: source, Message: "table has no rows"}
	}

	// Header: prefer <th> cells, fall back to the first row's <td>s.
	headerRow := rows.First()
	headerCells := headerRow.Find("th")
	if headerCells.Length() == 0 {
		headerCells = headerRow.Find("td")
	}

	colIndex := make(map[string]int)
	headerCells.Each(func(i int, s *goquery.Selection) {
		colIndex[strings.TrimSpace(strings.ToLower(s.Text()))] = i
	})

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
		IngestionType: "html",
		IngestedAt:    ingestedAt,
	}

	var records []types.Record
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		summary.RowsRead++

		rec, ok := normalizeRow(func(col string) string {
			idx := colIndex[col]
			if idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}, ingestedAt, "html")
		if !ok {
			summary.RowsDropped++
			return
		}
		records = append(records, rec)
	})
	summary.RowsIngested = len(records)

	return types.NewDataset(records), summary, nil
}
