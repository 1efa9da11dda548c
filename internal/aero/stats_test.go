package aero

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	series := Series{
		{CL: 0.2, CD: 0.02, Velocity: 10, DynamicPressure: 61.25},
		{CL: 0.4, CD: 0.04, Velocity: 12, DynamicPressure: 88.2},
		{CL: 0.6, CD: 0.06, Velocity: 14, DynamicPressure: 120.05},
	}

	s := Summarize(series)
	if s.CL.Count != 3 {
		t.Errorf("Expected count 3, got %d", s.CL.Count)
	}
	if math.Abs(s.CL.Mean-0.4) > 1e-9 {
		t.Errorf("Expected CL mean 0.4, got %g", s.CL.Mean)
	}
	if s.CL.Min != 0.2 || s.CL.Max != 0.6 {
		t.Errorf("Expected CL range [0.2, 0.6], got [%g, %g]", s.CL.Min, s.CL.Max)
	}
	// Population standard deviation of {0.2, 0.4, 0.6}.
	want := math.Sqrt(2 * 0.04 / 3)
	if math.Abs(s.CL.StdDev-want) > 1e-9 {
		t.Errorf("Expected CL stddev %g, got %g", want, s.CL.StdDev)
	}
	if math.Abs(s.Velocity.Mean-12) > 1e-9 {
		t.Errorf("Expected velocity mean 12, got %g", s.Velocity.Mean)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	s := Summarize(Series{{CL: 0.5, CD: 0.05, Velocity: 9, DynamicPressure: 49.6}})
	if s.CD.Mean != 0.05 || s.CD.StdDev != 0 {
		t.Errorf("Expected mean 0.05 and stddev 0, got %+v", s.CD)
	}
	if s.CD.Min != 0.05 || s.CD.Max != 0.05 {
		t.Errorf("Expected degenerate range, got %+v", s.CD)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}
