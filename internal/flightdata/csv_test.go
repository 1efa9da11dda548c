package flightdata

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"time, Linear Accel X ,Linear Accel Y,notes",
		"0.00,1.5,0.1,takeoff",
		"0.01,1.6,,climbing",
		"0.02,1.7,0.3,",
	}, "\n")

	header, rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(header) != 4 || header[1] != "Linear Accel X" {
		t.Errorf("Unexpected header: %v", header)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if got := rows[0]["Linear Accel X"]; got != 1.5 {
		t.Errorf("Expected accel 1.5, got %v", got)
	}
	if _, ok := rows[0]["notes"]; ok {
		t.Error("Non-numeric cell should be skipped, not stored")
	}
	if _, ok := rows[1]["Linear Accel Y"]; ok {
		t.Error("Empty cell should be skipped, not stored")
	}
}

func TestReadCSV_Empty(t *testing.T) {
	for _, input := range []string{"", "time,ax\n"} {
		_, _, err := ReadCSV(strings.NewReader(input))
		if !errors.Is(err, ErrEmptyRecording) {
			t.Errorf("Input %q: expected ErrEmptyRecording, got %v", input, err)
		}
	}
}

func TestReadCSV_ShortRows(t *testing.T) {
	input := "time,ax,ay\n0.0,1.0\n0.1,2.0,3.0,extra\n"
	_, rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["ay"]; ok {
		t.Error("Short row should not invent a value for the missing column")
	}
}
