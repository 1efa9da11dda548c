package aero

import "github.com/airborne-labs/aerocoef/internal/motion"

// epsilon guards divisions at near-zero speed and near-zero dynamic pressure
// so degenerate samples produce zeros instead of NaN or Inf.
const epsilon = 1e-8

// Forces are the lift and drag magnitudes of one sample, in newtons.
type Forces struct {
	Lift float64
	Drag float64
}

// Decompose splits the net aerodynamic force m*a into components parallel
// (drag) and perpendicular (lift) to the instantaneous velocity direction.
// Below minSpeed the direction is meaningless and both components are defined
// as zero. Drag keeps its magnitude unsigned; the projection sign carries no
// meaning once the force is normalized to a coefficient.
func Decompose(mass float64, accel, velocity motion.Vec3, minSpeed float64) Forces {
	speed := velocity.Norm()
	if speed <= minSpeed || speed < epsilon {
		return Forces{}
	}

	force := accel.Scale(mass)
	dragScalar := force.Dot(velocity) / (speed + epsilon)
	dragVector := velocity.Scale(dragScalar / (speed + epsilon))
	liftVector := force.Sub(dragVector)

	drag := dragScalar
	if drag < 0 {
		drag = -drag
	}
	return Forces{Lift: liftVector.Norm(), Drag: drag}
}
