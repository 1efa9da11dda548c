package aero

import (
	"math"
	"testing"
)

func TestNewLowPass_Alpha(t *testing.T) {
	// alpha = exp(-2*pi*cutoff/nyquist)
	f := NewLowPass(5, 100)
	want := math.Exp(-2 * math.Pi * 5 / 50)
	if math.Abs(f.Alpha()-want) > 1e-12 {
		t.Errorf("Expected alpha %g, got %g", want, f.Alpha())
	}
}

func TestNewLowPass_DegenerateIsPassThrough(t *testing.T) {
	tests := []struct {
		name         string
		cutoff, rate float64
	}{
		{"zero cutoff", 0, 100},
		{"negative cutoff", -1, 100},
		{"zero sample rate", 5, 0},
		{"cutoff at nyquist", 50, 100},
		{"cutoff above nyquist", 80, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLowPass(tt.cutoff, tt.rate)
			if f.Alpha() != 0 {
				t.Fatalf("Expected pass-through, got alpha %g", f.Alpha())
			}
			in := []float64{3, 1, 4, 1, 5}
			out := f.Apply(in)
			for i := range in {
				if out[i] != in[i] {
					t.Errorf("Sample %d changed: %g -> %g", i, in[i], out[i])
				}
			}
		})
	}
}

func TestLowPass_SeedsWithFirstSample(t *testing.T) {
	f := NewLowPass(5, 100)
	out := f.Apply([]float64{42, 0, 0})
	if out[0] != 42 {
		t.Errorf("Expected y[0] = x[0] = 42, got %g", out[0])
	}
}

func TestLowPass_ConstantSignalIsFixedPoint(t *testing.T) {
	f := NewLowPass(2, 50)
	in := []float64{7, 7, 7, 7, 7, 7}
	out := f.Apply(in)
	for i, v := range out {
		if math.Abs(v-7) > 1e-12 {
			t.Errorf("Sample %d: constant signal must pass unchanged, got %g", i, v)
		}
	}
}

func TestLowPass_AttenuatesStep(t *testing.T) {
	f := NewLowPass(2, 100)
	out := f.Apply([]float64{0, 10, 10, 10})

	if out[1] >= 10 {
		t.Errorf("Step must be attenuated, got %g", out[1])
	}
	for i := 2; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Errorf("Output must approach the step monotonically, got %v", out)
		}
	}
}

func TestLowPass_DoesNotModifyInput(t *testing.T) {
	f := NewLowPass(5, 100)
	in := []float64{0, 10, 0, 10}
	f.Apply(in)
	if in[1] != 10 || in[2] != 0 {
		t.Errorf("Input slice was modified: %v", in)
	}
}

func TestSmooth_OnlyTouchesCoefficients(t *testing.T) {
	series := Series{
		{Timestamp: 0, CL: 0, CD: 0, Velocity: 10, DynamicPressure: 61},
		{Timestamp: 0.1, CL: 1, CD: 0.5, Velocity: 11, DynamicPressure: 74},
		{Timestamp: 0.2, CL: 0, CD: 0, Velocity: 12, DynamicPressure: 88},
	}

	out := Smooth(series, 2, 10)
	if len(out) != len(series) {
		t.Fatalf("Expected length %d, got %d", len(series), len(out))
	}
	for i := range out {
		if out[i].Timestamp != series[i].Timestamp ||
			out[i].Velocity != series[i].Velocity ||
			out[i].DynamicPressure != series[i].DynamicPressure {
			t.Errorf("Sample %d: non-coefficient columns changed: %+v", i, out[i])
		}
	}
	if out[1].CL >= series[1].CL {
		t.Errorf("Expected CL spike to be smoothed below %g, got %g", series[1].CL, out[1].CL)
	}
}

func TestSmooth_Empty(t *testing.T) {
	if out := Smooth(nil, 2, 10); out != nil {
		t.Errorf("Expected nil for empty series, got %v", out)
	}
}
