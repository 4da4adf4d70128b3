/*
Package bucket provides a lock-free token bucket rate limiter.

A token bucket holds up to Capacity tokens and replenishes them at Rate
tokens per second. Consuming is immediate while tokens remain, which
makes the algorithm a natural fit for interactive workloads that should
tolerate short bursts up to the configured capacity.

Basic usage:

	limiter := bucket.New(20, 10) // capacity 20, refills 10 tokens/sec
	if err := limiter.TryAcquire(1); err != nil {
		// rejected; the error says when to retry
	}

Every operation is synchronous and non-blocking. Rejections are reported
as *errors.LimitExceededError carrying the requested count, the tokens
that were available, and a suggested back-off:

	err := limiter.TryAcquire(5)
	if retry, ok := errors.RetryAfter(err); ok {
		time.Sleep(retry) // or surface it to the caller
	}

Replenishment is lazy: no background goroutine runs, and the token count
is brought up to date on access from the elapsed time reported by the
bucket's Clock. The refill computation truncates toward zero, so elapsed
time that amounts to less than a whole token is carried forward until a
refill commits, at which point any sub-token remainder is dropped. This
coarse accounting is deliberate and part of the limiter's contract.

Live reconfiguration:

	if err := limiter.UpdateConfig(50, 25); err != nil {
		// invalid parameters; limiter unchanged
	}

UpdateConfig mutates the shared instance in place, so every goroutine
holding the limiter observes the new parameters immediately. The token
balance is clamped to the new capacity but never topped up.

For deterministic tests, inject a clock.MockClock via NewWithClock and
advance time manually.

Concurrency:

All operations are safe for concurrent use without external locking.
State is kept in independent atomic cells and mutated through
compare-and-swap retry loops, so a contended acquire retries against a
fresh snapshot rather than blocking. Aggregate accounting is exact: each
admitted token is subtracted exactly once, and total admissions never
exceed capacity.
*/
package bucket
