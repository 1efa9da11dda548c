package flightdata

import "testing"

func TestSampleBuffer_Ordering(t *testing.T) {
	buf := NewSampleBuffer()

	timestamps := []float64{0.3, 0.1, 0.5, 0.2, 0.4, 0.0}
	for _, ts := range timestamps {
		buf.Insert(SensorSample{Timestamp: ts})
	}

	if size := buf.Size(); size != len(timestamps) {
		t.Errorf("Expected buffer size %d, got %d", len(timestamps), size)
	}

	results := buf.DrainAll()
	if len(results) != len(timestamps) {
		t.Fatalf("Expected %d results, got %d", len(timestamps), len(results))
	}

	expected := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5}
	for i, ts := range expected {
		if results[i].Timestamp != ts {
			t.Errorf("Result %d: expected timestamp %v, got %v", i, ts, results[i].Timestamp)
		}
	}

	if buf.Size() != 0 {
		t.Errorf("Expected empty buffer after drain, got size %d", buf.Size())
	}
}

func TestSampleBuffer_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	buf := NewSampleBuffer()
	buf.Insert(SensorSample{Timestamp: 1, Channels: map[string]float64{"seq": 1}})
	buf.Insert(SensorSample{Timestamp: 1, Channels: map[string]float64{"seq": 2}})
	buf.Insert(SensorSample{Timestamp: 1, Channels: map[string]float64{"seq": 3}})

	results := buf.DrainAll()
	for i, want := range []float64{1, 2, 3} {
		if got := results[i].Channels["seq"]; got != want {
			t.Errorf("Result %d: expected seq %v, got %v", i, want, got)
		}
	}
}

func TestSampleBuffer_Clear(t *testing.T) {
	buf := NewSampleBuffer()
	buf.Insert(SensorSample{Timestamp: 1})
	buf.Insert(SensorSample{Timestamp: 2})

	buf.Clear()
	if buf.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", buf.Size())
	}
	if results := buf.DrainAll(); results != nil {
		t.Errorf("Expected nil drain after clear, got %v", results)
	}
}
