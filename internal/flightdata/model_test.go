package flightdata

import (
	"errors"
	"math"
	"testing"
)

func TestGuessTimeUnit(t *testing.T) {
	cases := []struct {
		raw  float64
		want TimeUnit
	}{
		{0, UnitSeconds},
		{12.5, UnitSeconds},
		{999_999_999, UnitSeconds},
		{1_700_000_000_000, UnitMilliseconds},
	}
	for _, tc := range cases {
		if got := GuessTimeUnit(tc.raw); got != tc.want {
			t.Errorf("GuessTimeUnit(%v) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestTimeUnit_Seconds(t *testing.T) {
	if got := UnitSeconds.Seconds(2.5); got != 2.5 {
		t.Errorf("UnitSeconds.Seconds(2.5) = %v", got)
	}
	if got := UnitMilliseconds.Seconds(2500); got != 2.5 {
		t.Errorf("UnitMilliseconds.Seconds(2500) = %v", got)
	}
}

func TestNewDataset_OrdersAndConverts(t *testing.T) {
	rows := []map[string]float64{
		{"time": 2000, "ax": 3},
		{"time": 1000, "ax": 2},
		{"ax": 99}, // no timestamp, dropped
		{"time": 3000, "ax": 4},
	}

	d := NewDataset(rows, "time", UnitMilliseconds)
	if d.Len() != 3 {
		t.Fatalf("Expected 3 samples, got %d", d.Len())
	}
	for i, want := range []float64{1, 2, 3} {
		if got := d.Samples[i].Timestamp; got != want {
			t.Errorf("Sample %d: expected timestamp %v, got %v", i, want, got)
		}
	}
	if got := d.Samples[0].Channels["ax"]; got != 2 {
		t.Errorf("Expected first sample ax=2 after ordering, got %v", got)
	}
}

func TestDataset_SampleRate(t *testing.T) {
	d := &Dataset{}
	for i := 0; i < 100; i++ {
		d.Samples = append(d.Samples, SensorSample{Timestamp: float64(i) * 0.01})
	}

	if rate := d.SampleRate(); math.Abs(rate-100) > 1e-6 {
		t.Errorf("Expected 100 Hz, got %v", rate)
	}
	if dur := d.Duration(); math.Abs(dur-0.99) > 1e-9 {
		t.Errorf("Expected duration 0.99s, got %v", dur)
	}
}

func TestDataset_SampleRateDegenerate(t *testing.T) {
	var empty Dataset
	if rate := empty.SampleRate(); rate != 0 {
		t.Errorf("Expected 0 Hz for empty dataset, got %v", rate)
	}

	same := Dataset{Samples: []SensorSample{{Timestamp: 1}, {Timestamp: 1}}}
	if rate := same.SampleRate(); rate != 0 {
		t.Errorf("Expected 0 Hz for zero-duration dataset, got %v", rate)
	}
}

func TestAircraftParameters_Validate(t *testing.T) {
	valid := AircraftParameters{WingAreaM2: 10, MassKG: 1.5, AirDensity: 1.225}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid parameters, got %v", err)
	}

	cases := []AircraftParameters{
		{WingAreaM2: 0, MassKG: 1.5, AirDensity: 1.225},
		{WingAreaM2: 10, MassKG: -1, AirDensity: 1.225},
		{WingAreaM2: 10, MassKG: 1.5, AirDensity: 0},
		{WingAreaM2: math.NaN(), MassKG: 1.5, AirDensity: 1.225},
		{WingAreaM2: math.Inf(1), MassKG: 1.5, AirDensity: 1.225},
	}
	for i, p := range cases {
		err := p.Validate()
		if err == nil {
			t.Errorf("Case %d: expected validation error for %+v", i, p)
			continue
		}
		if !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("Case %d: expected ErrInvalidParameters, got %v", i, err)
		}
	}
}
