package motion

import (
	"math"
	"testing"
)

func framesFromAccel(dt float64, accels ...Vec3) []Frame {
	frames := make([]Frame, len(accels))
	for i, a := range accels {
		frames[i] = Frame{Timestamp: float64(i) * dt, Accel: a}
	}
	return frames
}

func TestIntegrate_StartsAtRest(t *testing.T) {
	frames := framesFromAccel(0.1, Vec3{X: 5}, Vec3{X: 5}, Vec3{X: 5})

	states := Integrate(frames, IdentityReference(), Config{})
	if len(states) != len(frames) {
		t.Fatalf("Expected %d states, got %d", len(frames), len(states))
	}
	if states[0].Velocity != (Vec3{}) || states[0].Speed != 0 {
		t.Errorf("First state must be at rest, got %+v", states[0])
	}
	if states[0].DT != 0 {
		t.Errorf("First state must carry zero dt, got %g", states[0].DT)
	}
}

func TestIntegrate_ConstantAcceleration(t *testing.T) {
	// 2 m/s² along X at 10 Hz. Forward Euler accumulates a*dt per step, so
	// after k steps speed is exactly k*0.2.
	frames := framesFromAccel(0.1,
		Vec3{X: 2}, Vec3{X: 2}, Vec3{X: 2}, Vec3{X: 2}, Vec3{X: 2})

	states := Integrate(frames, IdentityReference(), Config{})
	for k := 1; k < len(states); k++ {
		want := float64(k) * 0.2
		if math.Abs(states[k].Velocity.X-want) > 1e-12 {
			t.Errorf("Step %d: expected vx %g, got %g", k, want, states[k].Velocity.X)
		}
	}
}

func TestIntegrate_DuplicateTimestampFloorsDT(t *testing.T) {
	frames := []Frame{
		{Timestamp: 1.0, Accel: Vec3{X: 1}},
		{Timestamp: 1.0, Accel: Vec3{X: 1}},
	}

	states := Integrate(frames, IdentityReference(), Config{})
	if states[1].DT <= 0 {
		t.Errorf("Duplicate timestamps must still yield a positive dt, got %g", states[1].DT)
	}
	if states[1].DT > 1e-6 {
		t.Errorf("Floored dt should be tiny, got %g", states[1].DT)
	}
}

func TestIntegrate_DriftSuppressionDecaysVelocity(t *testing.T) {
	// Build up speed, then hold acceleration below the threshold.
	frames := framesFromAccel(0.1,
		Vec3{X: 5}, Vec3{X: 5}, Vec3{X: 5},
		Vec3{}, Vec3{}, Vec3{}, Vec3{}, Vec3{})

	plain := Integrate(frames, IdentityReference(), Config{})
	damped := Integrate(frames, IdentityReference(), Config{DriftSuppression: true})

	last := len(frames) - 1
	if plain[last].Speed <= damped[last].Speed {
		t.Errorf("Suppression should shrink velocity: plain %g, damped %g",
			plain[last].Speed, damped[last].Speed)
	}
	if damped[last].Speed <= 0 {
		t.Errorf("Decay is asymptotic, speed must stay positive, got %g", damped[last].Speed)
	}
}

func TestIntegrate_DriftSuppressionInactiveAboveThreshold(t *testing.T) {
	frames := framesFromAccel(0.1, Vec3{X: 5}, Vec3{X: 5}, Vec3{X: 5})

	plain := Integrate(frames, IdentityReference(), Config{})
	damped := Integrate(frames, IdentityReference(), Config{
		DriftSuppression: true,
		DriftThreshold:   1.0,
	})

	last := len(frames) - 1
	if plain[last].Speed != damped[last].Speed {
		t.Errorf("Acceleration above threshold must not decay: plain %g, damped %g",
			plain[last].Speed, damped[last].Speed)
	}
}

func TestIntegrate_OrientationCorrectedRemovesGravity(t *testing.T) {
	// Level frames reading +g on Z. With calibration from the same segment
	// the corrected acceleration is zero and velocity stays at rest.
	frames := framesFromAccel(0.1,
		Vec3{Z: 9.81}, Vec3{Z: 9.81}, Vec3{Z: 9.81}, Vec3{Z: 9.81})

	ref := NewReference(frames)
	states := Integrate(frames, ref, Config{OrientationCorrected: true})

	last := states[len(states)-1]
	if last.Speed > 1e-9 {
		t.Errorf("Calibrated stationary segment should integrate to rest, got speed %g", last.Speed)
	}
}

func TestIntegrate_IdentityOrientationMatchesRaw(t *testing.T) {
	frames := framesFromAccel(0.1, Vec3{X: 2}, Vec3{X: 2}, Vec3{X: 2})
	for i := range frames {
		frames[i].Orientation = Identity()
		frames[i].HasOrientation = true
	}

	raw := Integrate(frames, IdentityReference(), Config{})
	corrected := Integrate(frames, Reference{Orientation: Identity(), Gravity: 0}, Config{
		OrientationCorrected: true,
	})

	for i := range raw {
		if math.Abs(raw[i].Speed-corrected[i].Speed) > 1e-12 {
			t.Errorf("Step %d: identity attitude and zero gravity must match raw integration: %g vs %g",
				i, raw[i].Speed, corrected[i].Speed)
		}
	}
}

func TestIntegrate_Empty(t *testing.T) {
	if states := Integrate(nil, IdentityReference(), Config{}); states != nil {
		t.Errorf("Expected nil for empty input, got %v", states)
	}
}
