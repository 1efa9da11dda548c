package motion

import (
	"math"

	"github.com/westphae/quaternion"
)

// StandardGravity is the fallback gravity magnitude in m/s² when no
// stationary calibration segment is available.
const StandardGravity = 9.80665

// Identity returns the identity rotation.
func Identity() quaternion.Quaternion {
	return quaternion.Quaternion{W: 1}
}

// Slerp spherically interpolates from a to b by fraction t in [0, 1].
// Antipodal pairs are flipped onto the same hemisphere first, and nearly
// parallel pairs fall back to normalized linear interpolation.
func Slerp(a, b quaternion.Quaternion, t float64) quaternion.Quaternion {
	dot := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	if dot < 0 {
		b = quaternion.Quaternion{W: -b.W, X: -b.X, Y: -b.Y, Z: -b.Z}
		dot = -dot
	}

	const parallel = 0.9995
	if dot > parallel {
		return quaternion.Quaternion{
			W: a.W + t*(b.W-a.W),
			X: a.X + t*(b.X-a.X),
			Y: a.Y + t*(b.Y-a.Y),
			Z: a.Z + t*(b.Z-a.Z),
		}.Unit()
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return quaternion.Quaternion{
		W: wa*a.W + wb*b.W,
		X: wa*a.X + wb*b.X,
		Y: wa*a.Y + wb*b.Y,
		Z: wa*a.Z + wb*b.Z,
	}.Unit()
}

// AverageOrientation approximates the spherical mean of a sequence of
// orientations by chaining SLERP with decreasing weights: the running average
// after i quaternions moves 1/(i+1) of the way toward the next one. Returns
// identity for an empty sequence.
func AverageOrientation(qs []quaternion.Quaternion) quaternion.Quaternion {
	if len(qs) == 0 {
		return Identity()
	}

	avg := qs[0].Unit()
	for i := 1; i < len(qs); i++ {
		avg = Slerp(avg, qs[i].Unit(), 1/float64(i+1))
	}
	return avg
}

// Rotate applies the rotation q to a vector via the sandwich product
// q * v * q'.
func Rotate(q quaternion.Quaternion, v Vec3) Vec3 {
	p := quaternion.Quaternion{X: v.X, Y: v.Y, Z: v.Z}
	r := quaternion.Prod(q, p, q.Conj())
	return Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// Reference is the calibration state derived from a stationary segment:
// the average attitude held while motionless and the gravity magnitude seen
// by the accelerometer in that state.
type Reference struct {
	Orientation quaternion.Quaternion
	Gravity     float64
}

// IdentityReference is the degenerate calibration used when no stationary
// segment exists: identity attitude, standard gravity.
func IdentityReference() Reference {
	return Reference{Orientation: Identity(), Gravity: StandardGravity}
}

// Correct rotates a body-frame acceleration into the reference frame using
// the frame's attitude relative to the calibration attitude, then removes the
// calibrated gravity from the vertical axis. Frames without orientation data
// only get the gravity removal.
func (r Reference) Correct(f Frame) Vec3 {
	accel := f.Accel
	if f.HasOrientation {
		relative := quaternion.Prod(r.Orientation.Conj(), f.Orientation.Unit())
		accel = Rotate(relative, accel)
	}
	accel.Z -= r.Gravity
	return accel
}

// NewReference derives the calibration from stationary-segment frames.
// Gravity is the magnitude of the mean acceleration over the segment; the
// reference attitude is the SLERP-chain average of the segment's quaternions.
// Frames without orientation contribute to gravity only. An empty segment
// degrades to IdentityReference.
func NewReference(stationary []Frame) Reference {
	if len(stationary) == 0 {
		return IdentityReference()
	}

	var sum Vec3
	var qs []quaternion.Quaternion
	for _, f := range stationary {
		sum = sum.Add(f.Accel)
		if f.HasOrientation {
			qs = append(qs, f.Orientation)
		}
	}

	// A near-zero estimate is meaningful: linear-acceleration channels have
	// gravity removed at the source, and then nothing should be subtracted.
	gravity := sum.Scale(1 / float64(len(stationary))).Norm()
	return Reference{
		Orientation: AverageOrientation(qs),
		Gravity:     gravity,
	}
}
