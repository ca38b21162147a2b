// Package sheet fetches and parses delimited tables published as CSV by a
// spreadsheet (the app uses published Google Sheets as an ad-hoc backend).
//
// The sheets are hand-maintained, so the parser is deliberately tolerant:
// header names come in several spellings (English, Korean-labeled, mixed
// case), individual cells may carry spreadsheet error markers, and numbers
// arrive decorated with currency symbols and thousands separators. A bad row
// is dropped with a warning and never aborts the batch; only an unreachable
// endpoint or an unusable body fails the whole call.
package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Failure categories, tested with errors.Is by the orchestrator to decide
// its fallback policy.
var (
	// ErrFetchFailed covers network failures and non-2xx responses.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParseFailed covers bodies that cannot be read as a table at all.
	ErrParseFailed = errors.New("parse failed")
)

// DefaultTimeout bounds every sheet request.
const DefaultTimeout = 30 * time.Second

// Client fetches tables from the configured published-sheet endpoints.
type Client struct {
	// PricesURL serves the price table: one row per ticker plus the
	// exchange-rate sentinel row.
	PricesURL string
	// PortfolioURL serves the portfolio definition used for bootstrap.
	PortfolioURL string
	// StudyFeedURL serves the daily study feed.
	StudyFeedURL string

	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// fetchTable GETs the endpoint and parses the body into a table. The first
// line is the header; skipLines extra decorative lines after it are
// discarded (legacy sheets carry a second banner line).
func (c *Client) fetchTable(ctx context.Context, url string, skipLines int) (*table, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", ErrFetchFailed)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrFetchFailed, redact(url), resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}
	return parseTable(string(body), skipLines)
}

// redact keeps log lines readable: published sheet URLs are very long.
func redact(url string) string {
	if i := strings.Index(url, "?"); i > 0 {
		return url[:i]
	}
	return url
}

// table is a parsed delimited body: a resolved header plus raw records.
type table struct {
	header  []string // trimmed header names
	col     map[string]int
	records [][]string
}

// parseTable reads a CSV body with a real CSV grammar (quoted fields may
// contain commas and newlines, which the spreadsheet export produces for
// names with commas in them).
func parseTable(body string, skipLines int) (*table, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrParseFailed)
	}

	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1 // hand-maintained sheets have ragged rows
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}
		records = append(records, record)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: table has %d lines, need a header and at least one row", ErrParseFailed, len(records))
	}

	t := &table{
		header: records[0],
		col:    make(map[string]int, len(records[0])),
	}
	for i, name := range t.header {
		name = strings.TrimSpace(name)
		t.header[i] = name
		if _, dup := t.col[name]; !dup {
			t.col[name] = i
		}
	}
	if 1+skipLines <= len(records) {
		t.records = records[1+skipLines:]
	}
	return t, nil
}

// errorMarkers are the spreadsheet formula failures that invalidate a row.
var errorMarkers = []string{"#N/A", "#ERROR", "#REF!", "#DIV/0!", "#VALUE!", "#NAME?"}

// hasErrorMarker reports whether any field of the record carries a
// spreadsheet error marker.
func hasErrorMarker(record []string) bool {
	for _, field := range record {
		for _, marker := range errorMarkers {
			if strings.Contains(field, marker) {
				return true
			}
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// row wraps one record with the table's header for alias lookup.
type row struct {
	t      *table
	record []string
}

// rows returns the valid rows of the table, dropping blank records and
// records with error markers. The drop never affects later rows.
func (t *table) rows() []row {
	valid := make([]row, 0, len(t.records))
	for i, record := range t.records {
		if isBlank(record) {
			continue
		}
		if hasErrorMarker(record) {
			log.Printf("skipping row %d: error marker in %v", i+2, record)
			continue
		}
		valid = append(valid, row{t: t, record: record})
	}
	return valid
}

// get resolves a logical field by trying header aliases in order and taking
// the first that yields a non-empty value. When no alias resolves to a
// column at all, it falls back to the positional index (legacy sheets
// published without a header row the app recognizes).
func (r row) get(aliases []string, position int) string {
	resolved := false
	for _, alias := range aliases {
		i, ok := r.t.col[alias]
		if !ok {
			continue
		}
		resolved = true
		if i < len(r.record) {
			if v := strings.TrimSpace(r.record[i]); v != "" {
				return v
			}
		}
	}
	if !resolved && position >= 0 && position < len(r.record) {
		return strings.TrimSpace(r.record[position])
	}
	return ""
}

// parsePrice coerces a price-like cell ("₩1,300.50", "$ 150.25") into a
// finite positive float. Everything but digits and the decimal point is
// stripped before parsing.
func parsePrice(s string) (float64, bool) {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' || c == '.' {
			b.WriteRune(c)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}
