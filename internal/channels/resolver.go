// Package channels maps the arbitrary column names found in flight recordings
// onto canonical sensor roles. Logging apps disagree wildly on naming
// ("Linear Accel X", "linear_accel_x", "ax", ...), so each role carries a
// prioritized synonym list and resolution is first-match-wins. Resolution
// happens once per dataset and the result is cached as a Binding.
package channels

import (
	"strings"

	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

// Role is a canonical sensor channel the pipeline understands.
type Role string

const (
	Time     Role = "time"
	AccelX   Role = "accelX"
	AccelY   Role = "accelY"
	AccelZ   Role = "accelZ"
	GyroX    Role = "gyroX"
	GyroY    Role = "gyroY"
	GyroZ    Role = "gyroZ"
	Pressure Role = "pressure"
	QuatW    Role = "quatW"
	QuatX    Role = "quatX"
	QuatY    Role = "quatY"
	QuatZ    Role = "quatZ"
)

// candidates lists source-column synonyms per role, highest priority first.
// Each candidate is tried as an exact match, then case-insensitively, before
// moving to the next.
var candidates = map[Role][]string{
	Time: {"Time (s)", "time", "timestamp", "Timestamp", "seconds_elapsed", "t"},

	AccelX: {"Linear Accel X", "linear_accel_x", "LinAccel X", "accelX", "accel_x", "Accel X", "ax"},
	AccelY: {"Linear Accel Y", "linear_accel_y", "LinAccel Y", "accelY", "accel_y", "Accel Y", "ay"},
	AccelZ: {"Linear Accel Z", "linear_accel_z", "LinAccel Z", "accelZ", "accel_z", "Accel Z", "az"},

	GyroX: {"Gyro X", "gyro_x", "gyroX", "Rotation Rate X", "rotation_rate_x", "gx"},
	GyroY: {"Gyro Y", "gyro_y", "gyroY", "Rotation Rate Y", "rotation_rate_y", "gy"},
	GyroZ: {"Gyro Z", "gyro_z", "gyroZ", "Rotation Rate Z", "rotation_rate_z", "gz"},

	Pressure: {"Differential Pressure", "differential_pressure", "Dynamic Pressure", "dynamic_pressure", "Pressure", "pressure", "dp"},

	QuatW: {"Quat W", "quat_w", "quaternionW", "Rotation W", "qw"},
	QuatX: {"Quat X", "quat_x", "quaternionX", "Rotation X", "qx"},
	QuatY: {"Quat Y", "quat_y", "quaternionY", "Rotation Y", "qy"},
	QuatZ: {"Quat Z", "quat_z", "quaternionZ", "Rotation Z", "qz"},
}

// allRoles in a stable reporting order.
var allRoles = []Role{
	Time,
	AccelX, AccelY, AccelZ,
	GyroX, GyroY, GyroZ,
	Pressure,
	QuatW, QuatX, QuatY, QuatZ,
}

// Binding is the resolved role -> source column mapping for one dataset.
// Build it once with Resolve and treat it as read-only.
type Binding struct {
	keys map[Role]string
}

// Resolve matches the given column names against the synonym tables.
// Roles with no matching column are left unbound; that is not an error,
// since many channels (orientation in particular) are genuinely absent
// from most recordings.
func Resolve(columns []string) *Binding {
	folded := make(map[string]string, len(columns))
	exact := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		exact[c] = struct{}{}
		lower := strings.ToLower(c)
		if _, taken := folded[lower]; !taken {
			folded[lower] = c
		}
	}

	b := &Binding{keys: make(map[Role]string, len(allRoles))}
	for role, list := range candidates {
		for _, cand := range list {
			if _, ok := exact[cand]; ok {
				b.keys[role] = cand
				break
			}
			if src, ok := folded[strings.ToLower(cand)]; ok {
				b.keys[role] = src
				break
			}
		}
	}
	return b
}

// ResolveDataset resolves against the union of channel names present in the
// dataset's first sample. Recordings keep a stable column set per file, so
// the first row is representative.
func ResolveDataset(d *flightdata.Dataset) *Binding {
	if d.Len() == 0 {
		return &Binding{keys: map[Role]string{}}
	}
	columns := make([]string, 0, len(d.Samples[0].Channels))
	for name := range d.Samples[0].Channels {
		columns = append(columns, name)
	}
	return Resolve(columns)
}

// Key returns the source column bound to the role and whether it resolved.
func (b *Binding) Key(role Role) (string, bool) {
	key, ok := b.keys[role]
	return key, ok
}

// Resolved reports whether the role found a source column.
func (b *Binding) Resolved(role Role) bool {
	_, ok := b.keys[role]
	return ok
}

// Value extracts the role's value from a sample. Unbound roles and missing
// cells resolve to 0; silent fallback is the contract, heterogeneous inputs
// must never make extraction fatal.
func (b *Binding) Value(sample flightdata.SensorSample, role Role) float64 {
	key, ok := b.keys[role]
	if !ok {
		return 0
	}
	return sample.Channels[key]
}

// Vector extracts a three-axis value from a sample.
func (b *Binding) Vector(sample flightdata.SensorSample, x, y, z Role) (float64, float64, float64) {
	return b.Value(sample, x), b.Value(sample, y), b.Value(sample, z)
}

// HasQuaternion reports whether all four orientation components resolved.
func (b *Binding) HasQuaternion() bool {
	return b.Resolved(QuatW) && b.Resolved(QuatX) && b.Resolved(QuatY) && b.Resolved(QuatZ)
}

// Unresolved returns the canonical roles that found no source column, in a
// stable order. Intended for diagnostics; unresolved roles degrade to zero
// values rather than erroring.
func (b *Binding) Unresolved() []Role {
	var missing []Role
	for _, role := range allRoles {
		if !b.Resolved(role) {
			missing = append(missing, role)
		}
	}
	return missing
}
