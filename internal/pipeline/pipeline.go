// Package pipeline runs the full coefficient derivation over a recording:
// channel resolution, window selection, velocity estimation, force
// decomposition, coefficient normalization and smoothing. A run is a pure
// function of (dataset, parameters, options); re-running with identical
// inputs yields identical output.
package pipeline

import (
	"fmt"

	"github.com/airborne-labs/aerocoef/internal/aero"
	"github.com/airborne-labs/aerocoef/internal/channels"
	"github.com/airborne-labs/aerocoef/internal/flightdata"
	"github.com/airborne-labs/aerocoef/internal/motion"
	"github.com/airborne-labs/aerocoef/internal/window"
	"github.com/westphae/quaternion"
)

// VelocityMode selects the velocity estimation strategy. The strategies make
// different physical assumptions and are not numerically equivalent; callers
// choose one explicitly.
type VelocityMode string

const (
	// RawIntegration integrates acceleration in the sensor's own axes.
	RawIntegration VelocityMode = "raw"
	// OrientationCorrected rotates acceleration into a reference frame
	// derived from the stationary segment and removes gravity before
	// integrating.
	OrientationCorrected VelocityMode = "orientation"
	// PressureDerived takes speed and dynamic pressure from the pressure
	// channel and assumes steady level flight for the force balance.
	PressureDerived VelocityMode = "pressure"
)

// Valid reports whether the mode is one of the three strategies.
func (m VelocityMode) Valid() bool {
	switch m {
	case RawIntegration, OrientationCorrected, PressureDerived:
		return true
	}
	return false
}

// Observer receives stage notifications during a run. Attaching one is
// optional and has no effect on computed values.
type Observer func(stage string)

// Options configure one analysis run.
type Options struct {
	Mode VelocityMode

	// Flight selects the segment to analyze. Stationary optionally selects a
	// presumed-motionless calibration segment; when nil the calibration
	// degrades to an identity reference.
	Flight     window.Spec
	Stationary *window.Spec

	// DriftSuppression decays integrated velocity during sustained
	// low-acceleration periods. Threshold and time constant fall back to the
	// motion package defaults when zero.
	DriftSuppression  bool
	DriftThreshold    float64
	DriftTimeConstant float64

	// MinSpeed gates force decomposition: below this speed in m/s the
	// velocity direction is considered meaningless and forces are zero.
	MinSpeed float64

	// CutoffHz enables low-pass smoothing of the CL/CD series when positive.
	// SampleRateHz overrides the rate estimated from the flight window.
	CutoffHz     float64
	SampleRateHz float64

	Observer Observer
}

// Result is the output of one analysis run.
type Result struct {
	Series  aero.Series
	Summary aero.Summary

	Flight     window.Window
	Stationary *window.Window

	// Unresolved lists canonical channel roles that found no source column.
	// They degraded to zero values during the run.
	Unresolved []channels.Role

	// SampleRateHz is the rate used by the smoothing stage.
	SampleRateHz float64
}

// Run executes the pipeline. Validation failures surface before any
// computation; an empty dataset or empty selected window yields an empty
// series and no error. Every CL/CD value in the result is finite.
func Run(dataset *flightdata.Dataset, params flightdata.AircraftParameters, opts Options) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("unknown velocity mode %q", opts.Mode)
	}

	observe := opts.Observer
	if observe == nil {
		observe = func(string) {}
	}

	// Too short to form any window: nothing to display, not a failure.
	if dataset.Len() < 2 {
		return &Result{}, nil
	}

	observe("resolving channels")
	binding := channels.ResolveDataset(dataset)

	observe("selecting windows")
	flight, err := window.Select(dataset, opts.Flight)
	if err != nil {
		return nil, fmt.Errorf("flight window: %w", err)
	}

	var stationary *window.Window
	if opts.Stationary != nil {
		win, err := window.Select(dataset, *opts.Stationary)
		if err != nil {
			return nil, fmt.Errorf("stationary window: %w", err)
		}
		stationary = &win
	}

	frames := buildFrames(flight.Slice(dataset.Samples), binding)

	observe("estimating velocity")
	var series aero.Series
	switch opts.Mode {
	case PressureDerived:
		series = pressureSeries(frames, binding, flight, dataset, params)
	default:
		ref := motion.IdentityReference()
		if opts.Mode == OrientationCorrected && stationary != nil {
			ref = motion.NewReference(buildFrames(stationary.Slice(dataset.Samples), binding))
		}

		states := motion.Integrate(frames, ref, motion.Config{
			OrientationCorrected: opts.Mode == OrientationCorrected,
			DriftSuppression:     opts.DriftSuppression,
			DriftThreshold:       opts.DriftThreshold,
			DriftTimeConstant:    opts.DriftTimeConstant,
		})

		observe("decomposing forces")
		series = make(aero.Series, len(frames))
		for i, frame := range frames {
			accel := frame.Accel
			if opts.Mode == OrientationCorrected {
				accel = ref.Correct(frame)
			}

			forces := aero.Decompose(params.MassKG, accel, states[i].Velocity, opts.MinSpeed)
			q := aero.DynamicPressure(params.AirDensity, states[i].Speed)
			cl, cd := aero.Normalize(forces, q, params)

			series[i] = aero.Coefficient{
				Timestamp:       frame.Timestamp,
				CL:              cl,
				CD:              cd,
				Velocity:        states[i].Speed,
				DynamicPressure: q,
			}
		}
	}

	rate := opts.SampleRateHz
	if rate <= 0 {
		rate = windowRate(frames)
	}

	if opts.CutoffHz > 0 {
		observe("smoothing")
		series = aero.Smooth(series, opts.CutoffHz, rate)
	}

	return &Result{
		Series:       series,
		Summary:      aero.Summarize(series),
		Flight:       flight,
		Stationary:   stationary,
		Unresolved:   binding.Unresolved(),
		SampleRateHz: rate,
	}, nil
}

// pressureSeries computes the series in pressure-derived mode: speed and
// dynamic pressure come from the pressure channel, and the force balance
// assumes steady level flight, lift carrying the aircraft's weight and drag
// matching the longitudinal deceleration.
func pressureSeries(frames []motion.Frame, binding *channels.Binding, flight window.Window, dataset *flightdata.Dataset, params flightdata.AircraftParameters) aero.Series {
	samples := flight.Slice(dataset.Samples)
	series := make(aero.Series, len(frames))
	for i, frame := range frames {
		pressure := binding.Value(samples[i], channels.Pressure)
		if pressure < 0 {
			pressure = 0
		}
		speed := aero.PressureVelocity(pressure, params.AirDensity)

		forces := aero.Forces{
			Lift: params.MassKG * motion.StandardGravity,
			Drag: params.MassKG * abs(frame.Accel.X),
		}
		cl, cd := aero.Normalize(forces, pressure, params)

		series[i] = aero.Coefficient{
			Timestamp:       frame.Timestamp,
			CL:              cl,
			CD:              cd,
			Velocity:        speed,
			DynamicPressure: pressure,
		}
	}
	return series
}

// buildFrames extracts canonical acceleration and orientation from windowed
// samples. Unresolved channels read as zero by contract.
func buildFrames(samples []flightdata.SensorSample, binding *channels.Binding) []motion.Frame {
	hasQuat := binding.HasQuaternion()
	frames := make([]motion.Frame, len(samples))
	for i, s := range samples {
		ax, ay, az := binding.Vector(s, channels.AccelX, channels.AccelY, channels.AccelZ)
		frame := motion.Frame{
			Timestamp: s.Timestamp,
			Accel:     motion.Vec3{X: ax, Y: ay, Z: az},
		}
		if hasQuat {
			q := quaternion.Quaternion{
				W: binding.Value(s, channels.QuatW),
				X: binding.Value(s, channels.QuatX),
				Y: binding.Value(s, channels.QuatY),
				Z: binding.Value(s, channels.QuatZ),
			}
			// An all-zero quaternion is a gap in the recording, not an
			// attitude; normalizing it would poison the run with NaNs.
			if q.W*q.W+q.X*q.X+q.Y*q.Y+q.Z*q.Z > 1e-12 {
				frame.Orientation = q
				frame.HasOrientation = true
			}
		}
		frames[i] = frame
	}
	return frames
}

// windowRate estimates the sampling rate of the selected window from the
// median positive step, mirroring Dataset.SampleRate but restricted to the
// window.
func windowRate(frames []motion.Frame) float64 {
	sub := flightdata.Dataset{Samples: make([]flightdata.SensorSample, len(frames))}
	for i, f := range frames {
		sub.Samples[i] = flightdata.SensorSample{Timestamp: f.Timestamp}
	}
	return sub.SampleRate()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
