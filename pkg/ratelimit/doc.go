/*
Package ratelimit provides lock-free rate limiting primitives.

This package defines the contracts shared by the concrete limiters:

  - bucket: Token bucket rate limiter allowing burst traffic
  - leakybucket: Leaky bucket rate limiter for smooth traffic flow
  - schedule: Cron-driven live reconfiguration of limiters

Token Bucket vs Leaky Bucket:

Token bucket treats capacity as a refillable pool: consuming subtracts,
time replenishes up to a cap. It starts full and is ideal for interactive
workloads that tolerate bursts:

	limiter := bucket.New(20, 10) // capacity 20, refills 10 tokens/sec
	if err := limiter.TryAcquire(1); err == nil {
		// process request
	}

Leaky bucket treats capacity as a drainable backlog: consuming adds, time
drains down to empty. It starts empty and is ideal for smoothing traffic
toward a fixed processing rate:

	limiter := leakybucket.New(5, 10) // burst 5, drains 10 units/sec
	if err := limiter.TryAcquire(1); err == nil {
		// submit work
	}

Both satisfy the Limiter and Reconfigurable interfaces, so admission
control code can be written against either algorithm. Every operation is
synchronous, non-blocking, and safe for concurrent use from any number of
goroutines sharing one limiter instance; rejected requests are reported
through errors.LimitExceededError with retry guidance, never queued.
*/
package ratelimit
