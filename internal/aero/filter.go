package aero

import "math"

// LowPass is a single-pole exponential IIR filter:
//
//	y[0] = x[0]
//	y[i] = alpha*y[i-1] + (1-alpha)*x[i]
//
// with alpha = exp(-2*pi*cutoff/nyquist). It is an exponential-decay smoother,
// not a Butterworth design; the raw coefficient series is noisy enough from
// integration that a first-order response is all the smoothing step needs.
type LowPass struct {
	alpha float64
}

// NewLowPass builds a filter for the given cutoff and sampling rate, both in
// Hz. Degenerate rates (cutoff or sample rate <= 0, cutoff at or above
// Nyquist) yield a pass-through filter.
func NewLowPass(cutoffHz, sampleRateHz float64) *LowPass {
	nyquist := sampleRateHz / 2
	if cutoffHz <= 0 || nyquist <= 0 || cutoffHz >= nyquist {
		return &LowPass{alpha: 0}
	}
	return &LowPass{alpha: math.Exp(-2 * math.Pi * cutoffHz / nyquist)}
}

// Alpha returns the filter pole. 0 means pass-through.
func (f *LowPass) Alpha() float64 {
	return f.alpha
}

// Apply filters a series, returning a new slice of equal length. The input is
// not modified.
func (f *LowPass) Apply(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = f.alpha*out[i-1] + (1-f.alpha)*series[i]
	}
	return out
}

// Smooth low-passes the CL and CD columns of a coefficient series in one
// pass, leaving velocity and dynamic pressure untouched. Returns a new series
// of equal length.
func Smooth(series Series, cutoffHz, sampleRateHz float64) Series {
	if len(series) == 0 {
		return nil
	}

	cl := make([]float64, len(series))
	cd := make([]float64, len(series))
	for i, c := range series {
		cl[i] = c.CL
		cd[i] = c.CD
	}

	filter := NewLowPass(cutoffHz, sampleRateHz)
	cl = filter.Apply(cl)
	cd = filter.Apply(cd)

	out := make(Series, len(series))
	for i, c := range series {
		c.CL = cl[i]
		c.CD = cd[i]
		out[i] = c
	}
	return out
}
