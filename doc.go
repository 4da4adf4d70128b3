/*
Package gorate provides lock-free rate limiting primitives for Go applications.

Rate Limiting (pkg/ratelimit):
  - bucket: Token bucket rate limiter with burst capacity
  - leakybucket: Smooth rate limiting without bursts
  - schedule: Cron-driven live reconfiguration of limiters

Supporting packages:
  - pkg/clock: Pluggable millisecond clock (system and mock implementations)
  - pkg/metrics: Prometheus instrumentation for limiters
  - pkg/common/errors: Error taxonomy shared by all limiters

Both limiters are safe for concurrent use without external locking. All
state lives in atomic cells updated via compare-and-swap, so a single
limiter instance can be shared by any number of goroutines. Every
operation is synchronous and returns immediately; there is no background
refill goroutine and no blocking surface.

Example usage:

	import "github.com/vnykmshr/gorate/pkg/ratelimit/bucket"

	limiter := bucket.New(20, 10) // burst of 20, refills 10 tokens/sec

	if err := limiter.TryAcquire(1); err != nil {
		// rejected; err carries how long to back off
	}
*/
package gorate
