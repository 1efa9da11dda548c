package channels

import (
	"testing"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

func TestResolve_PriorityOrder(t *testing.T) {
	// Both a high and a low priority synonym are present; the higher wins.
	b := Resolve([]string{"ax", "Linear Accel X", "time"})

	key, ok := b.Key(AccelX)
	if !ok {
		t.Fatal("accelX should resolve")
	}
	if key != "Linear Accel X" {
		t.Errorf("Expected highest priority synonym to win, got %q", key)
	}
}

func TestResolve_CaseInsensitiveFallback(t *testing.T) {
	b := Resolve([]string{"LINEAR_ACCEL_X", "TIMESTAMP"})

	if key, _ := b.Key(AccelX); key != "LINEAR_ACCEL_X" {
		t.Errorf("Expected case-insensitive match, got %q", key)
	}
	if key, _ := b.Key(Time); key != "TIMESTAMP" {
		t.Errorf("Expected case-insensitive timestamp match, got %q", key)
	}
}

func TestResolve_UnresolvedDefaultsToZero(t *testing.T) {
	b := Resolve([]string{"time", "accel_x"})

	sample := flightdata.SensorSample{Channels: map[string]float64{"accel_x": 2.5}}
	if got := b.Value(sample, AccelX); got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}
	if got := b.Value(sample, Pressure); got != 0 {
		t.Errorf("Unresolved channel should read 0, got %v", got)
	}
	if got := b.Value(sample, GyroZ); got != 0 {
		t.Errorf("Unresolved channel should read 0, got %v", got)
	}
}

func TestResolve_UnresolvedDiagnostics(t *testing.T) {
	b := Resolve([]string{"time", "accel_x", "accel_y", "accel_z", "pressure"})

	missing := map[Role]bool{}
	for _, role := range b.Unresolved() {
		missing[role] = true
	}

	for _, role := range []Role{GyroX, GyroY, GyroZ, QuatW, QuatX, QuatY, QuatZ} {
		if !missing[role] {
			t.Errorf("Expected %s to be reported unresolved", role)
		}
	}
	for _, role := range []Role{Time, AccelX, Pressure} {
		if missing[role] {
			t.Errorf("%s resolved but reported unresolved", role)
		}
	}
}

func TestResolve_HasQuaternion(t *testing.T) {
	partial := Resolve([]string{"quat_w", "quat_x", "quat_y"})
	if partial.HasQuaternion() {
		t.Error("Three of four components must not count as a quaternion")
	}

	full := Resolve([]string{"quat_w", "quat_x", "quat_y", "quat_z"})
	if !full.HasQuaternion() {
		t.Error("All four components present, expected HasQuaternion")
	}
}

func TestResolveDataset(t *testing.T) {
	d := &flightdata.Dataset{Samples: []flightdata.SensorSample{
		{Timestamp: 0, Channels: map[string]float64{"ax": 1, "time": 0}},
	}}

	b := ResolveDataset(d)
	if !b.Resolved(AccelX) {
		t.Error("accelX should resolve from dataset columns")
	}

	var empty flightdata.Dataset
	if got := ResolveDataset(&empty).Unresolved(); len(got) != len(allRoles) {
		t.Errorf("Empty dataset should leave every role unresolved, got %d resolved", len(allRoles)-len(got))
	}
}
