// Package table reads and writes price history tables.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"stockcast/internal/model"
)

// dateLayouts are tried in order for every Date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// Read loads a price table from a CSV file with a header row.
func Read(path string) (*model.PriceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	t, err := ReadFrom(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// ReadFrom loads a price table from r. The Date column is located by exact name
// first, then case-insensitively as "date" or "ds". Every Date cell must parse.
func ReadFrom(r io.Reader) (*model.PriceTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Column: model.ColumnDate, Err: errors.New("empty input")}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.TrimSpace(strings.Trim(h, "\""))
	}

	dateIdx := findDateColumn(header)
	if dateIdx < 0 {
		return nil, &ParseError{Line: 1, Column: model.ColumnDate, Err: ErrMissingColumn}
	}

	t := &model.PriceTable{Header: header, DateCol: dateIdx}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		line, _ := reader.FieldPos(0)
		if len(record) > len(header) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d fields, saw %d", len(header), len(record))}
		}
		for len(record) < len(header) {
			record = append(record, "")
		}

		raw := strings.TrimSpace(record[dateIdx])
		d, err := ParseDate(raw)
		if err != nil {
			return nil, &ParseError{Line: line, Column: header[dateIdx], Value: raw, Err: err}
		}
		t.Rows = append(t.Rows, model.Row{Date: d, Cells: record})
	}
	return t, nil
}

// ParseDate parses a calendar date in any of the accepted layouts. The result
// is midnight UTC of the date as written; time of day and offset are dropped.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// FormatDate renders d the way input dates are usually written: date only when
// there is no time-of-day component.
func FormatDate(d time.Time) string {
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
		return d.Format("2006-01-02")
	}
	return d.Format("2006-01-02 15:04:05")
}

func findDateColumn(header []string) int {
	for i, h := range header {
		if h == model.ColumnDate {
			return i
		}
	}
	for i, h := range header {
		if l := strings.ToLower(h); l == "date" || l == "ds" {
			return i
		}
	}
	return -1
}
