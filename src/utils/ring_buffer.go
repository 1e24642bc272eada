package utils

import (
	"market-simulator/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of chart points.
// -----------------------------------------------------------------------------

type RingBuffer struct {
	data     []models.MHistoricalPoint
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 50
	}

	return &RingBuffer{
		data:     make([]models.MHistoricalPoint, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds a point, overwriting the oldest one when full
func (rb *RingBuffer) Append(point models.MHistoricalPoint) {
	rb.data[rb.index] = point
	rb.index = (rb.index + 1) % rb.capacity

	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns the n newest points, oldest first
func (rb *RingBuffer) GetLatest(n int) []models.MHistoricalPoint {
	if rb.size == 0 || n <= 0 {
		return []models.MHistoricalPoint{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]models.MHistoricalPoint, count)
	startIdx := (rb.index - count + rb.capacity) % rb.capacity
	for i := 0; i < count; i++ {
		result[i] = rb.data[(startIdx+i)%rb.capacity]
	}

	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all data in insertion order (oldest to newest)
func (rb *RingBuffer) GetAll() []models.MHistoricalPoint {
	return rb.GetLatest(rb.size)
}

// -----------------------------------------------------------------------------

func (rb *RingBuffer) Size() int {
	return rb.size
}

func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

func (rb *RingBuffer) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Resize changes the capacity of the buffer
// If newCapacity < size, oldest data is dropped
func (rb *RingBuffer) Resize(newCapacity int) {
	if newCapacity <= 0 || newCapacity == rb.capacity {
		return
	}

	kept := rb.GetLatest(newCapacity)
	rb.data = make([]models.MHistoricalPoint, newCapacity)
	copy(rb.data, kept)
	rb.capacity = newCapacity
	rb.size = len(kept)
	rb.index = rb.size % newCapacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.index = 0
	rb.size = 0
}
