// Package clock provides the time source used by the rate limiters.
//
// Limiters never read wall-clock time directly; they are handed a Clock at
// construction. The production SystemClock reads the runtime monotonic
// clock, and MockClock lets tests advance time manually.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current time in integer milliseconds since an
// arbitrary fixed epoch. Implementations must be monotonic: two
// consecutive calls may return the same value, but never a smaller one.
type Clock interface {
	Now() int64
}

// epoch anchors SystemClock readings so they ride the monotonic clock
// rather than wall time, which can jump backwards.
var epoch = time.Now()

// SystemClock implements Clock using the runtime monotonic clock.
// The zero value is ready to use.
type SystemClock struct{}

// Now returns milliseconds elapsed since process start.
func (SystemClock) Now() int64 {
	return time.Since(epoch).Milliseconds()
}

// MockClock is a manually controlled Clock for deterministic tests.
// It is safe for concurrent use; copies share the same underlying time.
type MockClock struct {
	now *atomic.Int64
}

// NewMock creates a MockClock starting at the given time in milliseconds.
func NewMock(startMs int64) *MockClock {
	m := &MockClock{now: new(atomic.Int64)}
	m.now.Store(startMs)
	return m
}

// Now returns the current mock time in milliseconds.
func (m *MockClock) Now() int64 {
	return m.now.Load()
}

// Advance moves the clock forward by ms milliseconds.
func (m *MockClock) Advance(ms int64) {
	m.now.Add(ms)
}

// Set jumps the clock to the given time in milliseconds.
func (m *MockClock) Set(ms int64) {
	m.now.Store(ms)
}
