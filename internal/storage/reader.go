package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/airborne-labs/aerocoef/internal/aero"
	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

// readerOptions are shared filters for both row readers.
type readerOptions struct {
	minTimestamp *float64
	maxTimestamp *float64
}

// ReaderOption configures a reader created by ReadSamples or
// ReadCoefficients.
type ReaderOption func(*readerOptions)

// WithStartTime keeps only rows with timestamp >= startTS (seconds).
func WithStartTime(startTS float64) ReaderOption {
	return func(o *readerOptions) {
		o.minTimestamp = &startTS
	}
}

// WithEndTime keeps only rows with timestamp <= endTS (seconds).
func WithEndTime(endTS float64) ReaderOption {
	return func(o *readerOptions) {
		o.maxTimestamp = &endTS
	}
}

// WithTimeRange keeps only rows with timestamp in [startTS, endTS] (seconds).
func WithTimeRange(startTS, endTS float64) ReaderOption {
	return func(o *readerOptions) {
		o.minTimestamp = &startTS
		o.maxTimestamp = &endTS
	}
}

func buildQuery(base string, opts readerOptions, args []any) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	if opts.minTimestamp != nil {
		sb.WriteString(" AND timestamp >= ?")
		args = append(args, *opts.minTimestamp)
	}
	if opts.maxTimestamp != nil {
		sb.WriteString(" AND timestamp <= ?")
		args = append(args, *opts.maxTimestamp)
	}
	sb.WriteString(" ORDER BY id")
	return sb.String(), args
}

// SampleReader iterates over a session's stored sensor samples in insertion
// order. Close it after use; each reader belongs to a single goroutine.
type SampleReader struct {
	rows    *sql.Rows
	current flightdata.SensorSample
	err     error
}

// ReadSamples opens a streaming reader over a session's samples.
func (s *Store) ReadSamples(ctx context.Context, sessionID int64, opts ...ReaderOption) (*SampleReader, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	var options readerOptions
	for _, opt := range opts {
		opt(&options)
	}

	query, args := buildQuery(selectSamplesSQL, options, []any{sessionID})
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	return &SampleReader{rows: rows}, nil
}

// Next advances to the next sample. Returns false at the end of the result
// set or on error; check Error afterwards.
func (r *SampleReader) Next(ctx context.Context) bool {
	if r.err != nil || ctx.Err() != nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Err()
		return false
	}

	var channelsJSON string
	var sample flightdata.SensorSample
	if err := r.rows.Scan(&sample.Timestamp, &channelsJSON); err != nil {
		r.err = fmt.Errorf("scanning sample: %w", err)
		return false
	}
	if err := json.Unmarshal([]byte(channelsJSON), &sample.Channels); err != nil {
		r.err = fmt.Errorf("decoding channels: %w", err)
		return false
	}

	r.current = sample
	return true
}

// Current returns the sample the reader is positioned on.
func (r *SampleReader) Current() flightdata.SensorSample {
	return r.current
}

// Error returns the first error encountered during iteration.
func (r *SampleReader) Error() error {
	return r.err
}

// Close releases the underlying result set.
func (r *SampleReader) Close() error {
	return r.rows.Close()
}

// LoadDataset reads a session's full sample sequence into a Dataset.
func (s *Store) LoadDataset(ctx context.Context, sessionID int64, opts ...ReaderOption) (*flightdata.Dataset, error) {
	reader, err := s.ReadSamples(ctx, sessionID, opts...)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var samples []flightdata.SensorSample
	for reader.Next(ctx) {
		samples = append(samples, reader.Current())
	}
	if err := reader.Error(); err != nil {
		return nil, err
	}
	return &flightdata.Dataset{Samples: samples}, nil
}

// CoefficientReader iterates over a run's stored coefficient series.
type CoefficientReader struct {
	rows    *sql.Rows
	current aero.Coefficient
	err     error
}

// ReadCoefficients opens a streaming reader over a run's coefficient series.
func (s *Store) ReadCoefficients(ctx context.Context, runID int64, opts ...ReaderOption) (*CoefficientReader, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	var options readerOptions
	for _, opt := range opts {
		opt(&options)
	}

	query, args := buildQuery(selectCoefficientsSQL, options, []any{runID})
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying coefficients: %w", err)
	}
	return &CoefficientReader{rows: rows}, nil
}

// Next advances to the next coefficient record.
func (r *CoefficientReader) Next(ctx context.Context) bool {
	if r.err != nil || ctx.Err() != nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Err()
		return false
	}

	var c aero.Coefficient
	if err := r.rows.Scan(&c.Timestamp, &c.CL, &c.CD, &c.Velocity, &c.DynamicPressure); err != nil {
		r.err = fmt.Errorf("scanning coefficient: %w", err)
		return false
	}

	r.current = c
	return true
}

// Current returns the record the reader is positioned on.
func (r *CoefficientReader) Current() aero.Coefficient {
	return r.current
}

// Error returns the first error encountered during iteration.
func (r *CoefficientReader) Error() error {
	return r.err
}

// Close releases the underlying result set.
func (r *CoefficientReader) Close() error {
	return r.rows.Close()
}

// LoadSeries reads a run's full coefficient series.
func (s *Store) LoadSeries(ctx context.Context, runID int64, opts ...ReaderOption) (aero.Series, error) {
	reader, err := s.ReadCoefficients(ctx, runID, opts...)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var series aero.Series
	for reader.Next(ctx) {
		series = append(series, reader.Current())
	}
	if err := reader.Error(); err != nil {
		return nil, err
	}
	return series, nil
}
