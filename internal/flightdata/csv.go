package flightdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmptyRecording is returned when a recording contains a header but no
// data rows, or no header at all.
var ErrEmptyRecording = errors.New("recording contains no data rows")

// ReadCSV parses a loosely-structured tabular recording. The first row is the
// header; every later row becomes a name -> value map. Cells that do not parse
// as numbers are skipped rather than failing the row, and short rows are
// tolerated. Returns the header in file order and the parsed rows.
func ReadCSV(r io.Reader) (header []string, rows []map[string]float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err = cr.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyRecording
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}

		row := make(map[string]float64, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			row[header[i]] = value
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, nil, ErrEmptyRecording
	}
	return header, rows, nil
}
