package flightdata

import "sync"

// node is an internal linked list node for the sample ordering buffer.
type node struct {
	sample SensorSample
	next   *node
}

// SampleBuffer is a thread-safe buffer that keeps sensor samples ordered by
// timestamp as they are inserted. Recordings exported from logging apps are
// occasionally mildly shuffled; the buffer restores temporal order so the
// pipeline downstream can rely on non-decreasing timestamps.
type SampleBuffer struct {
	mu   sync.Mutex
	head *node
	size int
}

// NewSampleBuffer creates an empty ordering buffer.
func NewSampleBuffer() *SampleBuffer {
	return &SampleBuffer{}
}

// Insert adds a sample at its timestamp-ordered position. Samples with equal
// timestamps keep their insertion order.
func (sb *SampleBuffer) Insert(sample SensorSample) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.head == nil {
		sb.head = &node{sample: sample}
		sb.size++
		return
	}

	// Special case: sample belongs before head
	if sample.Timestamp < sb.head.sample.Timestamp {
		sb.head = &node{sample: sample, next: sb.head}
		sb.size++
		return
	}

	// Find insertion point
	current := sb.head
	for current != nil {
		if current.next == nil || current.next.sample.Timestamp > sample.Timestamp {
			current.next = &node{sample: sample, next: current.next}
			sb.size++
			return
		}
		current = current.next
	}
}

// DrainAll removes and returns all samples in timestamp order.
// Returns nil if the buffer is empty.
func (sb *SampleBuffer) DrainAll() []SensorSample {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.head == nil || sb.size == 0 {
		return nil
	}

	results := make([]SensorSample, 0, sb.size)
	current := sb.head
	for current != nil {
		results = append(results, current.sample)
		current = current.next
	}

	sb.head = nil
	sb.size = 0
	return results
}

// Size returns the current number of buffered samples.
func (sb *SampleBuffer) Size() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.size
}

// Clear removes all samples from the buffer.
func (sb *SampleBuffer) Clear() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.head = nil
	sb.size = 0
}
