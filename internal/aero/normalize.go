package aero

import (
	"math"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

// DynamicPressure returns q = 0.5 * rho * v² in pascals.
func DynamicPressure(airDensity, speed float64) float64 {
	return 0.5 * airDensity * speed * speed
}

// PressureVelocity derives airspeed from a sensed dynamic pressure:
// v = sqrt(2p/rho). Negative pressure readings (sensor noise around zero)
// clamp to zero speed.
func PressureVelocity(pressure, airDensity float64) float64 {
	if pressure <= 0 || airDensity <= 0 {
		return 0
	}
	return math.Sqrt(2 * pressure / airDensity)
}

// Normalize converts lift and drag force magnitudes into CL and CD using the
// dynamic pressure and wing area: C = F / (q*S + eps). At or near zero
// dynamic pressure the normalization is meaningless and both coefficients
// are zero, never NaN and never an epsilon-divided blowup.
func Normalize(f Forces, dynamicPressure float64, p flightdata.AircraftParameters) (cl, cd float64) {
	if dynamicPressure <= epsilon {
		return 0, 0
	}
	denom := dynamicPressure*p.WingAreaM2 + epsilon
	return f.Lift / denom, f.Drag / denom
}
