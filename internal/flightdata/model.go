package flightdata

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidParameters is returned when aircraft parameters fail validation.
// It is surfaced before any computation starts.
var ErrInvalidParameters = errors.New("invalid aircraft parameters")

// TimeUnit declares the unit of the raw timestamp channel. The pipeline never
// guesses; callers must state the unit explicitly. GuessTimeUnit exists for
// interactive front-ends that want a best-effort default.
type TimeUnit string

const (
	UnitSeconds      TimeUnit = "s"
	UnitMilliseconds TimeUnit = "ms"
)

// GuessTimeUnit inspects a raw timestamp value and guesses its unit.
// Epoch-like magnitudes are taken to be milliseconds. This is a convenience
// for CLI defaults only; the result is a guess, not a contract.
func GuessTimeUnit(rawTimestamp float64) TimeUnit {
	if rawTimestamp > 1e9 {
		return UnitMilliseconds
	}
	return UnitSeconds
}

// Seconds converts a raw timestamp expressed in the unit to seconds.
func (u TimeUnit) Seconds(raw float64) float64 {
	if u == UnitMilliseconds {
		return raw / 1000
	}
	return raw
}

// SensorSample is one timestamped row of a recording. Timestamp is in
// seconds (absolute or relative, whichever the recording uses). Channels maps
// the recording's own column names to numeric values; there is no fixed
// schema, and optional channels are simply absent from the map.
type SensorSample struct {
	Timestamp float64            `json:"timestamp"`
	Channels  map[string]float64 `json:"channels"`
}

// Dataset is an ordered, immutable sequence of sensor samples with
// non-decreasing timestamps. Treat it as read-only once built.
type Dataset struct {
	Samples []SensorSample
}

// NewDataset builds a Dataset from raw rows. timeKey names the timestamp
// column and unit its raw unit. Rows are ordered by timestamp on the way in,
// so mildly shuffled recordings are tolerated. Rows missing the timestamp
// column are dropped.
func NewDataset(rows []map[string]float64, timeKey string, unit TimeUnit) *Dataset {
	buf := NewSampleBuffer()
	for _, row := range rows {
		raw, ok := row[timeKey]
		if !ok {
			continue
		}
		buf.Insert(SensorSample{Timestamp: unit.Seconds(raw), Channels: row})
	}
	return &Dataset{Samples: buf.DrainAll()}
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Samples)
}

// Duration returns the time span of the recording in seconds.
func (d *Dataset) Duration() float64 {
	if d.Len() < 2 {
		return 0
	}
	return d.Samples[len(d.Samples)-1].Timestamp - d.Samples[0].Timestamp
}

// SampleRate estimates the recording rate in Hz from the median positive
// timestamp step. Returns 0 for recordings too short to estimate.
func (d *Dataset) SampleRate() float64 {
	if d.Len() < 2 {
		return 0
	}

	steps := make([]float64, 0, d.Len()-1)
	for i := 1; i < len(d.Samples); i++ {
		if dt := d.Samples[i].Timestamp - d.Samples[i-1].Timestamp; dt > 0 {
			steps = append(steps, dt)
		}
	}
	if len(steps) == 0 {
		return 0
	}

	sort.Float64s(steps)
	median := steps[len(steps)/2]
	if median <= 0 {
		return 0
	}
	return 1 / median
}

// AircraftParameters are the operator-supplied constants of a run. MassKG is
// used directly as mass in F = m*a; recordings that quote "aircraft weight"
// in kilograms map onto it unchanged.
type AircraftParameters struct {
	WingAreaM2 float64 `yaml:"wingSurfaceArea" json:"wingSurfaceArea"`
	MassKG     float64 `yaml:"aircraftWeight" json:"aircraftWeight"`
	AirDensity float64 `yaml:"airDensity" json:"airDensity"`
}

// Validate checks that all parameters are strictly positive and finite.
func (p AircraftParameters) Validate() error {
	switch {
	case !(p.WingAreaM2 > 0) || math.IsInf(p.WingAreaM2, 0):
		return fmt.Errorf("%w: wing surface area must be positive, got %g", ErrInvalidParameters, p.WingAreaM2)
	case !(p.MassKG > 0) || math.IsInf(p.MassKG, 0):
		return fmt.Errorf("%w: aircraft weight must be positive, got %g", ErrInvalidParameters, p.MassKG)
	case !(p.AirDensity > 0) || math.IsInf(p.AirDensity, 0):
		return fmt.Errorf("%w: air density must be positive, got %g", ErrInvalidParameters, p.AirDensity)
	}
	return nil
}
