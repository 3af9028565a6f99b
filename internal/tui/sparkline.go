package tui

// sparklineChars holds the eight block heights of a sparkline, lowest first.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer keeps the most recent samples of a series up to a fixed
// capacity.
type RingBuffer struct {
	data  []float64
	next  int // slot the next sample is written to
	count int
}

// NewRingBuffer creates a ring buffer holding at least one sample.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends a sample, dropping the oldest one when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.next] = v
	r.next = (r.next + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of samples held.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the most recent sample, or 0 if empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.next-1+len(r.data))%len(r.data)]
}

// Max returns the largest sample held, or 0 if empty.
func (r *RingBuffer) Max() float64 {
	var m float64
	for _, v := range r.Slice() {
		m = max(m, v)
	}
	return m
}

// Slice returns the samples oldest first, or nil if empty.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	first := (r.next - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(first+i)%len(r.data)]
	}
	return out
}

// Resize changes the capacity and keeps the most recent samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.data) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.next, r.count = 0, 0
	for _, v := range kept {
		r.Push(v)
	}
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.next, r.count = 0, 0
}

// RenderSparkline renders percentages (0..100) as a row of block
// characters. Values outside the range are clamped.
func RenderSparkline(values []float64) string {
	return RenderScaledSparkline(values, 100)
}

// RenderScaledSparkline renders values relative to ceiling, which maps to
// the tallest block. A non-positive ceiling renders every value as the
// lowest block.
func RenderScaledSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	top := len(sparklineChars) - 1
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v/ceiling, 0), 1) * float64(top))
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}
