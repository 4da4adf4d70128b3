package ratelimit

import "time"

// Limiter is the uniform operation set implemented by every rate limiter
// in this module. A single Limiter instance is meant to be shared by
// reference among any number of goroutines; implementations must be safe
// for concurrent use without external locking.
type Limiter interface {
	// TryAcquire attempts to consume n units of capacity now. It never
	// blocks: it either succeeds and returns nil, or fails and returns a
	// *errors.LimitExceededError carrying the requested and available
	// counts plus a suggested back-off. TryAcquire(0) always succeeds
	// without changing state.
	TryAcquire(n int) error

	// Available reports the units currently consumable, after bringing
	// time-dependent state up to date. The result is published, so
	// repeated calls with no intervening time advance agree.
	Available() int

	// Capacity returns the configured maximum burst size.
	Capacity() int

	// Rate returns the configured rate in units per second.
	Rate() float64

	// TimeUntilNext reports how long until the next unit frees up. The
	// second result is false when a unit is available right now.
	TimeUntilNext() (time.Duration, bool)
}

// Reconfigurable is a capability extension for limiters whose rate and
// capacity can be changed in place while concurrent callers are active.
// Not every Limiter implementation supports it.
type Reconfigurable interface {
	Limiter

	// UpdateConfig atomically installs a new capacity and rate. Both must
	// be positive; otherwise a *errors.ValidationError is returned and the
	// limiter is left unchanged. On success all holders of the shared
	// instance observe the new parameters immediately, and the live
	// counter is clamped so it never exceeds the new capacity.
	UpdateConfig(capacity int, rate float64) error
}
