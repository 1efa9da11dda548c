package storage

import (
	"reflect"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	base := "SELECT timestamp FROM samples WHERE session_id = ?"

	tests := []struct {
		name  string
		opts  []ReaderOption
		query string
		args  []any
	}{
		{
			"no filters",
			nil,
			base + " ORDER BY id",
			[]any{int64(7)},
		},
		{
			"start time",
			[]ReaderOption{WithStartTime(1.5)},
			base + " AND timestamp >= ? ORDER BY id",
			[]any{int64(7), 1.5},
		},
		{
			"end time",
			[]ReaderOption{WithEndTime(9.5)},
			base + " AND timestamp <= ? ORDER BY id",
			[]any{int64(7), 9.5},
		},
		{
			"time range",
			[]ReaderOption{WithTimeRange(1.5, 9.5)},
			base + " AND timestamp >= ? AND timestamp <= ? ORDER BY id",
			[]any{int64(7), 1.5, 9.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var options readerOptions
			for _, opt := range tt.opts {
				opt(&options)
			}

			query, args := buildQuery(base, options, []any{int64(7)})
			if query != tt.query {
				t.Errorf("Expected query %q, got %q", tt.query, query)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Errorf("Expected args %v, got %v", tt.args, args)
			}
		})
	}
}
