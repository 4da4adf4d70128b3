package bucket

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/gorate/pkg/clock"
	"github.com/vnykmshr/gorate/pkg/common/validation"
	"github.com/vnykmshr/gorate/pkg/ratelimit"
)

// TokenBucket is a lock-free token bucket rate limiter. Capacity is a
// refillable pool: consuming subtracts tokens, elapsed time replenishes
// them up to the configured capacity.
//
// All mutable state lives in independent atomic cells, so a single
// *TokenBucket can be shared by any number of goroutines without external
// locking. State transitions are optimistic: each operation snapshots the
// relevant cells, computes the successor state, and publishes it with a
// compare-and-swap, restarting from a fresh snapshot on conflict. Because
// the cells are independent, a reconfiguration racing with an acquire may
// be observed as a partially updated combination (new rate with old
// counter); per-field updates are still never lost or double-counted.
type TokenBucket struct {
	clock clock.Clock

	// capacity is the maximum tokens the bucket can hold.
	capacity atomic.Int64
	// rate holds tokens-per-second as float64 bits.
	rate atomic.Uint64
	// msPerToken holds 1000/rate as float64 bits, cached to avoid
	// recomputation on every refresh.
	msPerToken atomic.Uint64
	// tokens is the live counter, 0 <= tokens <= capacity.
	tokens atomic.Int64
	// lastUpdate is the clock reading at the last committed refill.
	lastUpdate atomic.Int64
}

var _ ratelimit.Reconfigurable = (*TokenBucket)(nil)

// Config holds configuration options for creating a TokenBucket.
type Config struct {
	// Capacity is the maximum number of tokens the bucket can hold.
	Capacity int

	// Rate is the number of tokens replenished per second.
	Rate float64

	// Clock provides the current time. If nil, clock.SystemClock is used.
	Clock clock.Clock

	// InitialTokens is the number of tokens to start with.
	// If negative, the bucket starts full.
	InitialTokens int
}

// New creates a token bucket with the given capacity and refill rate,
// bound to the system clock. The bucket starts full.
//
// New panics if capacity or rate is not positive; use NewWithConfig to
// get an error instead.
func New(capacity int, rate float64) *TokenBucket {
	tb, err := NewWithConfig(Config{Capacity: capacity, Rate: rate, InitialTokens: -1})
	if err != nil {
		panic(err)
	}
	return tb
}

// NewWithClock creates a token bucket bound to the supplied clock. This
// is useful for tests and for environments that need to control time.
// It panics if capacity or rate is not positive.
func NewWithClock(capacity int, rate float64, clk clock.Clock) *TokenBucket {
	tb, err := NewWithConfig(Config{Capacity: capacity, Rate: rate, Clock: clk, InitialTokens: -1})
	if err != nil {
		panic(err)
	}
	return tb
}

// NewWithConfig creates a token bucket from a Config, returning a
// validation error instead of panicking on bad parameters.
func NewWithConfig(config Config) (*TokenBucket, error) {
	if err := validation.ValidatePositive("bucket", "capacity", config.Capacity); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveFloat("bucket", "rate", config.Rate); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = clock.SystemClock{}
	}

	initial := int64(config.InitialTokens)
	if initial < 0 || initial > int64(config.Capacity) {
		initial = int64(config.Capacity)
	}

	tb := &TokenBucket{clock: config.Clock}
	tb.capacity.Store(int64(config.Capacity))
	tb.rate.Store(math.Float64bits(config.Rate))
	tb.msPerToken.Store(math.Float64bits(1000 / config.Rate))
	tb.tokens.Store(initial)
	tb.lastUpdate.Store(config.Clock.Now())
	return tb, nil
}

// Every converts a minimum interval between tokens into a rate in tokens
// per second: Every(100*time.Millisecond) == 10. It panics if the
// interval is not positive.
func Every(interval time.Duration) float64 {
	if interval <= 0 {
		panic("bucket: interval must be positive")
	}
	return float64(time.Second) / float64(interval)
}
