// Package leakybucket provides a lock-free leaky bucket rate limiter.
//
// A leaky bucket models an accumulating backlog that drains at a fixed
// per-unit interval. Admitting a request adds units to the backlog;
// elapsed time removes them. Admission succeeds while the backlog plus
// the request fits within the configured burst capacity. This produces a
// smoother output pattern than the token bucket in this module's bucket
// package, which allows instantaneous bursts up to its full capacity
// whenever the pool has refilled.
//
// # Usage
//
//	lb := leakybucket.New(10, 5) // burst of 10, drains 5 units/sec
//
//	if err := lb.TryAcquire(1); err != nil {
//		var lerr *errors.LimitExceededError
//		if errors.As(err, &lerr) {
//			// back off for lerr.RetryAfter
//		}
//	}
//
// TryAcquire never blocks and never queues: a request that does not fit
// is rejected with a retry hint, and it is the caller's decision whether
// to wait and retry. A request for more units than the total capacity is
// rejected immediately with a zero hint, since it can never fit.
//
// # Drain semantics
//
// The backlog drains lazily on each operation rather than on a timer.
// The bucket tracks its drain schedule as a timestamp (the moment the
// oldest queued unit leaves) instead of a last-observation time: a
// partial drain advances the schedule by exactly the interval the
// processed units account for, so progress toward the next drain is
// preserved across observations at sub-interval spacing. Once the
// backlog fully empties, the schedule resets to one interval past the
// draining observation.
//
// # Reconfiguration
//
// UpdateConfig swaps capacity and rate in place on the shared instance.
// The backlog is settled under the old rate first, then clamped down to
// the new capacity if it exceeds it. Concurrent TryAcquire calls observe
// either the old or the new parameters, never a torn value.
//
// # Concurrency
//
// All state lives in atomic cells and every state transition commits via
// compare-and-swap, restarting from a fresh snapshot on conflict. A
// single *LeakyBucket may be shared freely across goroutines; under
// concurrent load the backlog never exceeds capacity and admitted units
// are never double-counted.
package leakybucket
