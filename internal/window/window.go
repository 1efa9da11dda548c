// Package window converts operator-specified segment bounds into concrete
// row-index ranges of a recording. Bounds may be given as percentages of the
// record, absolute timestamps, or offsets from the first sample.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

// ErrInvalidWindow is returned when a window specification cannot produce a
// valid, non-empty row range. Callers retain their previously accepted window
// on this error; selection never partially updates anything.
var ErrInvalidWindow = errors.New("invalid time window")

// Mode selects how Spec bounds are interpreted.
type Mode string

const (
	// ModePercent interprets bounds as percentages (0-100) of the record.
	ModePercent Mode = "percent"
	// ModeAbsolute interprets bounds as absolute timestamps in seconds.
	ModeAbsolute Mode = "absolute"
	// ModeOffset interprets bounds as seconds from the first sample.
	ModeOffset Mode = "offset"
)

// Spec is an operator-supplied pair of segment bounds.
type Spec struct {
	Mode  Mode    `yaml:"mode"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Window is an inclusive row-index range [Start, End] into a sample sequence,
// satisfying 0 <= Start < End < len(samples).
type Window struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the window.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Slice returns the sub-sequence of samples the window covers.
func (w Window) Slice(samples []flightdata.SensorSample) []flightdata.SensorSample {
	return samples[w.Start : w.End+1]
}

// Select resolves the spec against a dataset into a concrete window.
//
// Percent mode maps each bound through floor(p/100 * n) and clamps into
// [0, n-1]. Absolute and offset modes scan to the first sample at or after
// the start target and the last sample at or before the end target.
// Fails with ErrInvalidWindow when the spec is inverted, a bound falls
// outside the record, or the resulting range is empty.
func Select(d *flightdata.Dataset, spec Spec) (Window, error) {
	n := d.Len()
	if n < 2 {
		return Window{}, fmt.Errorf("%w: recording has %d samples", ErrInvalidWindow, n)
	}
	if spec.Start >= spec.End {
		return Window{}, fmt.Errorf("%w: start %g >= end %g", ErrInvalidWindow, spec.Start, spec.End)
	}

	switch spec.Mode {
	case ModePercent, "":
		return selectPercent(n, spec)
	case ModeAbsolute:
		return selectTimestamps(d, spec.Start, spec.End)
	case ModeOffset:
		first := d.Samples[0].Timestamp
		return selectTimestamps(d, first+spec.Start, first+spec.End)
	default:
		return Window{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidWindow, spec.Mode)
	}
}

func selectPercent(n int, spec Spec) (Window, error) {
	if spec.Start < 0 || spec.End > 100 {
		return Window{}, fmt.Errorf("%w: percentages must lie in [0, 100], got [%g, %g]",
			ErrInvalidWindow, spec.Start, spec.End)
	}

	start := clamp(int(math.Floor(spec.Start/100*float64(n))), 0, n-1)
	end := clamp(int(math.Floor(spec.End/100*float64(n))), 0, n-1)
	if start >= end {
		return Window{}, fmt.Errorf("%w: percent bounds [%g, %g] collapse to a single row",
			ErrInvalidWindow, spec.Start, spec.End)
	}
	return Window{Start: start, End: end}, nil
}

func selectTimestamps(d *flightdata.Dataset, startTS, endTS float64) (Window, error) {
	samples := d.Samples
	first := samples[0].Timestamp
	last := samples[len(samples)-1].Timestamp
	if startTS < first || endTS > last {
		return Window{}, fmt.Errorf("%w: bounds [%g, %g] outside record [%g, %g]",
			ErrInvalidWindow, startTS, endTS, first, last)
	}

	start := len(samples)
	for i, s := range samples {
		if s.Timestamp >= startTS {
			start = i
			break
		}
	}
	end := -1
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i].Timestamp <= endTS {
			end = i
			break
		}
	}

	if start >= end || start >= len(samples) || end < 0 {
		return Window{}, fmt.Errorf("%w: no samples in [%g, %g]", ErrInvalidWindow, startTS, endTS)
	}
	return Window{Start: start, End: end}, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
