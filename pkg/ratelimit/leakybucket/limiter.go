package leakybucket

import (
	"math"
	"sync/atomic"

	"github.com/vnykmshr/gorate/pkg/clock"
	"github.com/vnykmshr/gorate/pkg/common/validation"
	"github.com/vnykmshr/gorate/pkg/ratelimit"
)

// LeakyBucket is a lock-free leaky bucket rate limiter. It models an
// accumulating backlog that drains at a fixed per-unit interval: admitting
// a request adds to the backlog, and elapsed time removes from it. This is
// the complement of the token bucket's refillable pool, and produces a
// smoother admission pattern at the same nominal rate.
//
// All mutable state lives in independent atomic cells, so a single
// *LeakyBucket can be shared by any number of goroutines without external
// locking. The bucket tracks drain phase in nextAllowed rather than only a
// last-observation timestamp, so fractional progress toward the next drain
// survives partial drains instead of being truncated away.
type LeakyBucket struct {
	clock clock.Clock

	// capacity is the maximum backlog the bucket can hold (burst size).
	capacity atomic.Int64
	// msPerUnit holds the drain interval in milliseconds as float64 bits.
	msPerUnit atomic.Uint64
	// level is the current backlog, 0 <= level <= capacity.
	level atomic.Int64
	// nextAllowed is the clock reading at which the oldest queued unit
	// drains. It carries the drain phase across partial drains.
	nextAllowed atomic.Int64
}

var _ ratelimit.Reconfigurable = (*LeakyBucket)(nil)

// Config holds configuration options for creating a LeakyBucket.
type Config struct {
	// Capacity is the maximum burst size. Zero defaults to 1, which
	// admits strictly one unit per drain interval.
	Capacity int

	// Rate is the number of units drained per second.
	Rate float64

	// Clock provides the current time. If nil, clock.SystemClock is used.
	Clock clock.Clock
}

// New creates a leaky bucket with the given burst capacity and drain
// rate, bound to the system clock. The bucket starts empty, so the full
// burst capacity is immediately available.
//
// New panics if capacity or rate is not positive; use NewWithConfig to
// get an error instead.
func New(capacity int, rate float64) *LeakyBucket {
	// Validate here rather than relying on NewWithConfig, whose zero
	// capacity means "unspecified" and defaults to 1.
	if err := validation.ValidatePositive("leakybucket", "capacity", capacity); err != nil {
		panic(err)
	}
	lb, err := NewWithConfig(Config{Capacity: capacity, Rate: rate})
	if err != nil {
		panic(err)
	}
	return lb
}

// NewWithClock creates a leaky bucket bound to the supplied clock. This
// is useful for tests and for environments that need to control time.
// It panics if capacity or rate is not positive.
func NewWithClock(capacity int, rate float64, clk clock.Clock) *LeakyBucket {
	if err := validation.ValidatePositive("leakybucket", "capacity", capacity); err != nil {
		panic(err)
	}
	lb, err := NewWithConfig(Config{Capacity: capacity, Rate: rate, Clock: clk})
	if err != nil {
		panic(err)
	}
	return lb
}

// NewWithConfig creates a leaky bucket from a Config, returning a
// validation error instead of panicking on bad parameters.
func NewWithConfig(config Config) (*LeakyBucket, error) {
	if config.Capacity == 0 {
		config.Capacity = 1
	}
	if err := validation.ValidatePositive("leakybucket", "capacity", config.Capacity); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveFloat("leakybucket", "rate", config.Rate); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = clock.SystemClock{}
	}

	lb := &LeakyBucket{clock: config.Clock}
	lb.capacity.Store(int64(config.Capacity))
	lb.msPerUnit.Store(math.Float64bits(1000 / config.Rate))
	lb.nextAllowed.Store(config.Clock.Now())
	return lb, nil
}

// OnePerSecond creates a leaky bucket that admits one unit per second
// with no burst, bound to the system clock.
func OnePerSecond() *LeakyBucket {
	return New(1, 1)
}
