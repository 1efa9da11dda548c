// Package aero turns per-sample kinematics into non-dimensional aerodynamic
// coefficients: net force decomposition against the velocity direction,
// dynamic-pressure normalization, and low-pass smoothing of the result.
package aero

// Coefficient is one sample of the derived output series.
type Coefficient struct {
	Timestamp       float64 `json:"timestamp"`       // Seconds, same clock as the input recording
	CL              float64 `json:"cl"`              // Dimensionless lift coefficient
	CD              float64 `json:"cd"`              // Dimensionless drag coefficient
	Velocity        float64 `json:"velocity"`        // Scalar speed in m/s
	DynamicPressure float64 `json:"dynamicPressure"` // Pascals
}

// Series is the ordered per-sample coefficient output of one analysis run,
// one record per flight-window sample. Immutable once produced.
type Series []Coefficient
