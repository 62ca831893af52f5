package history

import (
	"math"
	"time"
)

// Sample is a single speed measurement. Immutable after creation.
type Sample struct {
	Timestamp    time.Time
	DownloadMbps float64
	UploadMbps   float64
}

// Valid reports whether both speeds are finite and non-negative.
// Malformed samples are dropped before they reach the buffer.
func (s Sample) Valid() bool {
	for _, v := range []float64{s.DownloadMbps, s.UploadMbps} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// Ring keeps a fixed-size window of the most recent samples.
// The oldest sample is evicted when the window is full.
type Ring struct {
	samples  []Sample
	capacity int
}

// NewRing creates a ring with the given capacity. Capacities below 1 are
// clamped to 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a sample, evicting the oldest entry when the ring is full.
// Invalid samples are silently dropped and Push reports false.
func (r *Ring) Push(s Sample) bool {
	if !s.Valid() {
		return false
	}
	if len(r.samples) >= r.capacity {
		copy(r.samples, r.samples[1:])
		r.samples[len(r.samples)-1] = s
		return true
	}
	r.samples = append(r.samples, s)
	return true
}

// Len returns the number of retained samples.
func (r *Ring) Len() int { return len(r.samples) }

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return r.capacity }

// Samples returns the retained samples oldest-first. The returned slice is a
// copy; mutating it does not affect the ring.
func (r *Ring) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Last returns the most recent sample, or false when the ring is empty.
func (r *Ring) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Reset drops all retained samples, keeping the capacity.
func (r *Ring) Reset() {
	r.samples = r.samples[:0]
}

// Scale tracks the running maximum observed speed for axis scaling. It never
// decreases within a session; Reset starts a new session.
type Scale struct {
	max float64
}

// Observe folds a sample into the running maximum.
func (sc *Scale) Observe(s Sample) {
	if s.DownloadMbps > sc.max {
		sc.max = s.DownloadMbps
	}
	if s.UploadMbps > sc.max {
		sc.max = s.UploadMbps
	}
}

// Max returns the running maximum, floored at 1 so a session that has only
// seen zeroes still produces a usable axis.
func (sc *Scale) Max() float64 {
	if sc.max < 1 {
		return 1
	}
	return sc.max
}

// RawMax returns the running maximum without the floor.
func (sc *Scale) RawMax() float64 { return sc.max }

// Reset clears the running maximum.
func (sc *Scale) Reset() { sc.max = 0 }
