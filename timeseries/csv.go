package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn string // Column name for dates (default: "ds")
	DateFormat string // Date format (default: "2006-01-02")
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn: "ds",
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// LoadTableCSV loads a date-indexed table from a CSV file. Every column other
// than the date column is parsed as numeric; empty, "NA", "NaN" and "null"
// cells become NaN so invalid observations stay addressable by row.
func LoadTableCSV(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadTableCSVFromReader(file, opts)
}

// LoadTableCSVFromReader loads a date-indexed table from an io.Reader.
func LoadTableCSVFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	dateIdx := -1
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		names[i] = h
		if h == opts.DateColumn {
			dateIdx = i
		}
	}
	if dateIdx == -1 {
		// fall back to common date column names
		for i, h := range names {
			if h == "ds" || h == "date" || h == "Date" {
				dateIdx = i
				break
			}
		}
	}
	if dateIdx == -1 {
		return nil, errors.New("no date column found in CSV")
	}

	formats := []string{
		opts.DateFormat,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006/01/02",
		"2006",
	}

	var dates []time.Time
	values := make([][]float64, len(header))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
		var ts time.Time
		parsed := false
		for _, f := range formats {
			if ts, err = time.Parse(f, dateStr); err == nil {
				parsed = true
				break
			}
		}
		if !parsed {
			return nil, errors.New("cannot parse date value " + strconv.Quote(dateStr))
		}
		dates = append(dates, ts)

		for i, cell := range record {
			if i == dateIdx {
				continue
			}
			cell = strings.TrimSpace(strings.Trim(cell, "\""))
			v := math.NaN()
			if cell != "" && cell != "NA" && cell != "NaN" && cell != "null" {
				if parsedVal, err := strconv.ParseFloat(cell, 64); err == nil {
					v = parsedVal
				}
			}
			values[i] = append(values[i], v)
		}
	}

	if len(dates) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}
	if !IsOrdered(dates) {
		return nil, ErrUnorderedDates
	}

	table := NewTable(dates)
	for i, name := range names {
		if i == dateIdx {
			continue
		}
		if err := table.AddColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// SaveTableCSV writes a table to a CSV file with the date index first.
func SaveTableCSV(table *Table, filename, dateCol string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	names := table.ColumnNames()
	writer.WriteString(dateCol)
	for _, name := range names {
		writer.WriteString(",")
		writer.WriteString(name)
	}
	writer.WriteString("\n")

	dates := table.Dates()
	for i := 0; i < table.Len(); i++ {
		writer.WriteString(dates[i].Format("2006-01-02"))
		for _, name := range names {
			col, err := table.Column(name)
			if err != nil {
				return err
			}
			writer.WriteString(",")
			writer.WriteString(strconv.FormatFloat(col[i], 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return nil
}
