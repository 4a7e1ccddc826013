package audio

import "sync"

// CircularBuffer is a fixed-capacity FIFO of mono f32 samples. Pushing past
// capacity evicts the oldest samples; overflow is a normal condition, not
// an error. Backed by a single preallocated array so memory use is
// bounded regardless of how long the engine runs.
type CircularBuffer struct {
	mu       sync.Mutex
	data     []float32
	capacity int
	writePos int
	full     bool
}

// NewCircularBuffer returns an empty CircularBuffer with the given sample
// capacity.
func NewCircularBuffer(capacity int) *CircularBuffer {
	return &CircularBuffer{
		data:     make([]float32, capacity),
		capacity: capacity,
	}
}

// Push appends samples, evicting the oldest entries as needed to preserve
// capacity.
func (b *CircularBuffer) Push(samples []float32) {
	if len(samples) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(samples) >= b.capacity {
		copy(b.data, samples[len(samples)-b.capacity:])
		b.writePos = 0
		b.full = true
		return
	}

	n := len(samples)
	end := b.writePos + n
	if end <= b.capacity {
		copy(b.data[b.writePos:end], samples)
	} else {
		first := b.capacity - b.writePos
		copy(b.data[b.writePos:], samples[:first])
		copy(b.data[:end-b.capacity], samples[first:])
	}
	if end >= b.capacity {
		b.full = true
	}
	b.writePos = end % b.capacity
}

// ReadAll drains all buffered samples and returns them in FIFO order.
func (b *CircularBuffer) ReadAll() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []float32
	switch {
	case !b.full:
		out = make([]float32, b.writePos)
		copy(out, b.data[:b.writePos])
	default:
		out = make([]float32, b.capacity)
		copy(out, b.data[b.writePos:])
		copy(out[b.capacity-b.writePos:], b.data[:b.writePos])
	}
	b.writePos = 0
	b.full = false
	return out
}

// Clear drops all buffered samples without returning them.
func (b *CircularBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writePos = 0
	b.full = false
}

// Len returns the current number of buffered samples.
func (b *CircularBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.full {
		return b.capacity
	}
	return b.writePos
}

// IsEmpty reports whether the buffer currently holds no samples.
func (b *CircularBuffer) IsEmpty() bool {
	return b.Len() == 0
}
