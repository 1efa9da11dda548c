// Package motion estimates per-sample velocity by numerical integration of
// acceleration over a flight segment, with optional attitude correction from
// a stationary calibration segment and heuristic drift suppression.
package motion

import (
	"math"

	"github.com/westphae/quaternion"
)

// minDT is the floor applied to non-leading time steps so a duplicated
// timestamp cannot zero out a step or blow up rate math downstream.
const minDT = 1e-6

// Default drift suppression tuning. Sustained acceleration below the
// threshold is taken to mean near-constant true velocity, and the integrated
// estimate is decayed toward zero with the given time constant.
const (
	DefaultDriftThreshold    = 0.15 // m/s²
	DefaultDriftTimeConstant = 0.5  // s
)

// Frame is one integration input sample: timestamp in seconds, body-frame
// acceleration, and an optional orientation quaternion.
type Frame struct {
	Timestamp      float64
	Accel          Vec3
	Orientation    quaternion.Quaternion
	HasOrientation bool
}

// State is one integration output sample.
type State struct {
	Timestamp float64
	DT        float64 // seconds since the previous frame, 0 for the first
	Velocity  Vec3
	Speed     float64
}

// Config controls the integrator.
type Config struct {
	// OrientationCorrected rotates each frame's acceleration into the
	// reference frame and subtracts the calibrated gravity from the vertical
	// axis before integrating.
	OrientationCorrected bool

	// DriftSuppression enables exponential decay of the accumulated velocity
	// during low-acceleration periods.
	DriftSuppression bool

	// DriftThreshold is the acceleration magnitude in m/s² below which decay
	// applies. Zero selects DefaultDriftThreshold.
	DriftThreshold float64

	// DriftTimeConstant is the decay time constant in seconds. Zero selects
	// DefaultDriftTimeConstant.
	DriftTimeConstant float64
}

// Integrate runs forward-Euler integration of acceleration over the frames
// and returns one state per frame. Velocity starts at rest: the first state
// of a segment is always (0,0,0), a modeling choice rather than a physical
// fact. The input slice is never modified and no accumulator escapes the
// routine.
//
// Integrate never fails: frames with entirely unresolved acceleration simply
// integrate to zero velocity.
func Integrate(frames []Frame, ref Reference, cfg Config) []State {
	if len(frames) == 0 {
		return nil
	}

	threshold := cfg.DriftThreshold
	if threshold == 0 {
		threshold = DefaultDriftThreshold
	}
	tau := cfg.DriftTimeConstant
	if tau == 0 {
		tau = DefaultDriftTimeConstant
	}

	states := make([]State, len(frames))
	states[0] = State{Timestamp: frames[0].Timestamp}

	velocity := Vec3{}
	for i := 1; i < len(frames); i++ {
		dt := frames[i].Timestamp - frames[i-1].Timestamp
		if dt < minDT {
			dt = minDT
		}

		accel := frames[i].Accel
		if cfg.OrientationCorrected {
			accel = ref.Correct(frames[i])
		}

		if cfg.DriftSuppression && accel.Norm() < threshold {
			velocity = velocity.Scale(math.Exp(-dt / tau))
		}
		velocity = velocity.Add(accel.Scale(dt))

		states[i] = State{
			Timestamp: frames[i].Timestamp,
			DT:        dt,
			Velocity:  velocity,
			Speed:     velocity.Norm(),
		}
	}
	return states
}
