package aero

import (
	"math"
	"testing"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

func TestDynamicPressure(t *testing.T) {
	// q = 0.5 * 1.225 * 20² = 245 Pa
	if got := DynamicPressure(1.225, 20); math.Abs(got-245) > 1e-9 {
		t.Errorf("Expected 245, got %g", got)
	}
	if got := DynamicPressure(1.225, 0); got != 0 {
		t.Errorf("Expected 0 at rest, got %g", got)
	}
}

func TestPressureVelocity(t *testing.T) {
	// v = sqrt(2 * 50 / 1.225) ≈ 9.035
	got := PressureVelocity(50, 1.225)
	if math.Abs(got-9.035) > 1e-3 {
		t.Errorf("Expected ~9.035, got %g", got)
	}
}

func TestPressureVelocity_ClampsNegativeReadings(t *testing.T) {
	if got := PressureVelocity(-3, 1.225); got != 0 {
		t.Errorf("Negative pressure must clamp to 0, got %g", got)
	}
	if got := PressureVelocity(0, 1.225); got != 0 {
		t.Errorf("Zero pressure must yield 0, got %g", got)
	}
}

func TestNormalize(t *testing.T) {
	params := flightdata.AircraftParameters{WingAreaM2: 0.5, MassKG: 1, AirDensity: 1.225}

	cl, cd := Normalize(Forces{Lift: 49, Drag: 4.9}, 245, params)
	if math.Abs(cl-0.4) > 1e-6 {
		t.Errorf("Expected CL 0.4, got %g", cl)
	}
	if math.Abs(cd-0.04) > 1e-6 {
		t.Errorf("Expected CD 0.04, got %g", cd)
	}
}

func TestNormalize_ZeroDynamicPressure(t *testing.T) {
	params := flightdata.AircraftParameters{WingAreaM2: 0.5, MassKG: 1, AirDensity: 1.225}

	tests := []struct {
		name string
		q    float64
	}{
		{"zero", 0},
		{"below epsilon", 1e-9},
		{"negative", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl, cd := Normalize(Forces{Lift: 10, Drag: 1}, tt.q, params)
			if cl != 0 || cd != 0 {
				t.Errorf("Degenerate dynamic pressure must yield zero coefficients, got cl=%g cd=%g", cl, cd)
			}
		})
	}
}
