package bucket

import (
	"math"
	"time"

	gerrors "github.com/vnykmshr/gorate/pkg/common/errors"
	"github.com/vnykmshr/gorate/pkg/common/validation"
)

// TryAcquire attempts to consume n tokens. It returns nil on success or a
// *errors.LimitExceededError when fewer than n tokens are available after
// the lazy refill. TryAcquire never blocks; on a CAS conflict with a
// concurrent caller the whole refill-check-subtract sequence restarts
// from a fresh snapshot.
//
// n <= 0 succeeds trivially without touching state.
func (tb *TokenBucket) TryAcquire(n int) error {
	if n <= 0 {
		return nil
	}

	want := int64(n)
	for {
		now := tb.clock.Now()
		cur := tb.refresh(now)

		if want > cur {
			msPerToken := math.Float64frombits(tb.msPerToken.Load())
			wait := time.Duration(math.Ceil(float64(want-cur)*msPerToken)) * time.Millisecond
			return gerrors.NewLimitExceededError(n, int(cur), wait)
		}

		if tb.tokens.CompareAndSwap(cur, cur-want) {
			return nil
		}
	}
}

// Available refreshes and returns the current token count without
// consuming anything. The refill is published, so subsequent callers
// observe it.
func (tb *TokenBucket) Available() int {
	return int(tb.refresh(tb.clock.Now()))
}

// Capacity returns the configured maximum number of tokens.
func (tb *TokenBucket) Capacity() int {
	return int(tb.capacity.Load())
}

// Rate returns the configured refill rate in tokens per second.
func (tb *TokenBucket) Rate() float64 {
	return math.Float64frombits(tb.rate.Load())
}

// TimeUntilNext reports how long until the next token is replenished.
// The second result is false when a token is available right now.
func (tb *TokenBucket) TimeUntilNext() (time.Duration, bool) {
	now := tb.clock.Now()
	if tb.refresh(now) > 0 {
		return 0, false
	}

	msPerToken := math.Float64frombits(tb.msPerToken.Load())
	next := tb.lastUpdate.Load() + int64(math.Ceil(msPerToken))
	if next > now {
		return time.Duration(next-now) * time.Millisecond, true
	}
	return 0, false
}

// UpdateConfig installs a new capacity and rate in place. Validation
// happens before any mutation, so an invalid request leaves the bucket
// untouched. Pending refill is settled under the old parameters first,
// then the new parameters are swapped in and the token counter is
// clamped down to the new capacity if it exceeds it. Tokens are not
// topped up: holders keep whatever balance survived the clamp.
func (tb *TokenBucket) UpdateConfig(capacity int, rate float64) error {
	if err := validation.ValidatePositive("bucket", "capacity", capacity); err != nil {
		return err
	}
	if err := validation.ValidatePositiveFloat("bucket", "rate", rate); err != nil {
		return err
	}

	tb.refresh(tb.clock.Now())

	tb.capacity.Store(int64(capacity))
	tb.rate.Store(math.Float64bits(rate))
	tb.msPerToken.Store(math.Float64bits(1000 / rate))

	// Clamp with CAS so a concurrent acquire's subtraction is never
	// resurrected by a blind store.
	for {
		cur := tb.tokens.Load()
		if cur <= int64(capacity) {
			return nil
		}
		if tb.tokens.CompareAndSwap(cur, int64(capacity)) {
			return nil
		}
	}
}

// refresh brings the token counter up to date relative to now and
// returns the refreshed count. Replenishment is floor(elapsed /
// msPerToken); lastUpdate only advances when at least one whole token
// was added, so sub-token elapsed time keeps accumulating until it
// amounts to a token, and the fractional remainder beyond the floor is
// dropped at that point.
func (tb *TokenBucket) refresh(now int64) int64 {
	last := tb.lastUpdate.Load()
	elapsed := now - last
	if elapsed <= 0 {
		return tb.tokens.Load()
	}

	msPerToken := math.Float64frombits(tb.msPerToken.Load())
	added := float64(elapsed) / msPerToken
	if added < 1 {
		return tb.tokens.Load()
	}

	tb.lastUpdate.Store(now)

	capacity := tb.capacity.Load()
	if added >= float64(capacity) {
		// Enough elapsed time to fill from empty; skip the addition to
		// avoid overflowing the int64 conversion on huge gaps.
		tb.tokens.Store(capacity)
		return capacity
	}

	cur := tb.tokens.Load()
	next := cur + int64(added)
	if next > capacity {
		next = capacity
	}
	tb.tokens.Store(next)
	return next
}
