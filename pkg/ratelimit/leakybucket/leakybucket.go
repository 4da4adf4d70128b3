package leakybucket

import (
	"math"
	"time"

	gerrors "github.com/vnykmshr/gorate/pkg/common/errors"
	"github.com/vnykmshr/gorate/pkg/common/validation"
)

// TryAcquire attempts to add n units to the backlog. It returns nil on
// success or a *errors.LimitExceededError when the backlog cannot absorb
// n more units after the lazy drain. TryAcquire never blocks; on a CAS
// conflict with a concurrent caller the whole drain-check-add sequence
// restarts from a fresh snapshot.
//
// n <= 0 succeeds trivially without touching state. A request for more
// units than the total capacity fails immediately with a zero retry
// hint, since no amount of waiting can satisfy it.
func (lb *LeakyBucket) TryAcquire(n int) error {
	if n <= 0 {
		return nil
	}

	capacity := lb.capacity.Load()
	if int64(n) > capacity {
		return gerrors.NewLimitExceededError(n, int(capacity), 0)
	}

	want := int64(n)
	for {
		now := lb.clock.Now()
		level, _ := lb.drain(now)

		if level+want > capacity {
			msPerUnit := math.Float64frombits(lb.msPerUnit.Load())
			wait := time.Duration(math.Ceil(float64(level+want-capacity)*msPerUnit)) * time.Millisecond
			return gerrors.NewLimitExceededError(n, int(capacity-level), wait)
		}

		if lb.level.CompareAndSwap(level, level+want) {
			return nil
		}
	}
}

// Available drains lazily and returns the remaining burst headroom, the
// number of units TryAcquire could admit right now.
func (lb *LeakyBucket) Available() int {
	level, _ := lb.drain(lb.clock.Now())
	headroom := lb.capacity.Load() - level
	if headroom < 0 {
		return 0
	}
	return int(headroom)
}

// Capacity returns the configured maximum burst size.
func (lb *LeakyBucket) Capacity() int {
	return int(lb.capacity.Load())
}

// Rate returns the configured drain rate in units per second, rounded to
// six decimal places to absorb the round trip through the stored
// per-unit interval.
func (lb *LeakyBucket) Rate() float64 {
	msPerUnit := math.Float64frombits(lb.msPerUnit.Load())
	return math.Round(1000/msPerUnit*1e6) / 1e6
}

// TimeUntilNext reports how long until the oldest queued unit drains.
// The second result is false when the drain schedule is not in the
// future, which includes the idle bucket.
func (lb *LeakyBucket) TimeUntilNext() (time.Duration, bool) {
	now := lb.clock.Now()
	next := lb.nextAllowed.Load()
	if next > now {
		return time.Duration(next-now) * time.Millisecond, true
	}
	return 0, false
}

// UpdateConfig installs a new capacity and rate in place. Validation
// happens before any mutation, so an invalid request leaves the bucket
// untouched. The pending backlog is drained under the old parameters
// first, then the new parameters are swapped in, the drain schedule is
// pulled forward so it is never left in the past, and the backlog is
// clamped down to the new capacity if it exceeds it.
func (lb *LeakyBucket) UpdateConfig(capacity int, rate float64) error {
	if err := validation.ValidatePositive("leakybucket", "capacity", capacity); err != nil {
		return err
	}
	if err := validation.ValidatePositiveFloat("leakybucket", "rate", rate); err != nil {
		return err
	}

	now := lb.clock.Now()
	level, _ := lb.drain(now)

	lb.capacity.Store(int64(capacity))
	lb.msPerUnit.Store(math.Float64bits(1000 / rate))

	// Keep the drain schedule consistent with the settled backlog: an
	// empty bucket restarts its phase at now, and a stale schedule is
	// never left behind now, so the next drain computes a sane elapsed.
	if level == 0 {
		lb.nextAllowed.Store(now)
	} else if lb.nextAllowed.Load() < now {
		lb.nextAllowed.Store(now)
	}

	// Clamp with CAS so a concurrent drain's subtraction is never
	// resurrected by a blind store.
	for {
		cur := lb.level.Load()
		if cur <= int64(capacity) {
			return nil
		}
		if lb.level.CompareAndSwap(cur, int64(capacity)) {
			return nil
		}
	}
}

// drain brings the backlog up to date relative to now and returns the
// drained level along with the current drain schedule. Elapsed time is
// measured against nextAllowed, not a last-update timestamp: a partial
// drain advances nextAllowed by exactly the time the processed units
// account for, so sub-interval phase is preserved, while a full drain
// resets the schedule to one interval from now.
func (lb *LeakyBucket) drain(now int64) (int64, int64) {
	for {
		level := lb.level.Load()
		next := lb.nextAllowed.Load()
		if level == 0 {
			return 0, next
		}

		elapsed := now - next
		if elapsed <= 0 {
			return level, next
		}

		msPerUnit := math.Float64frombits(lb.msPerUnit.Load())
		processed := int64(float64(elapsed) / msPerUnit)
		if processed == 0 {
			return level, next
		}

		if processed >= level {
			if lb.level.CompareAndSwap(level, 0) {
				newNext := now + int64(msPerUnit)
				lb.nextAllowed.Store(newNext)
				return 0, newNext
			}
			continue
		}

		newNext := next + int64(float64(processed)*msPerUnit)
		if lb.level.CompareAndSwap(level, level-processed) {
			lb.nextAllowed.Store(newNext)
			return level - processed, newNext
		}
	}
}
