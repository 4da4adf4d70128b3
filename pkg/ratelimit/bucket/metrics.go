package bucket

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	gerrors "github.com/vnykmshr/gorate/pkg/common/errors"
	"github.com/vnykmshr/gorate/pkg/metrics"
	"github.com/vnykmshr/gorate/pkg/ratelimit"
)

const limiterType = "token_bucket"

// Instrumented wraps a TokenBucket with Prometheus metrics collection.
// The underlying limiter's lock-free hot path is untouched; counters are
// updated after each delegated call.
type Instrumented struct {
	lim      *TokenBucket
	name     string
	registry *metrics.Registry
	enabled  bool
}

var (
	_ ratelimit.Reconfigurable = (*Instrumented)(nil)
	_ metrics.Instrumentable   = (*Instrumented)(nil)
)

// NewWithMetrics creates a token bucket with metrics enabled, registered
// on a dedicated Prometheus registry to avoid collector conflicts.
func NewWithMetrics(capacity int, rate float64, name string) *Instrumented {
	registry := prometheus.NewRegistry()
	return NewInstrumented(New(capacity, rate), name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewInstrumented wraps an existing TokenBucket with metrics.
func NewInstrumented(tb *TokenBucket, name string, config metrics.Config) *Instrumented {
	registry := metrics.DefaultRegistry
	if config.Metrics != nil {
		registry = config.Metrics
	} else if config.Registry != nil {
		registry = metrics.NewRegistry(config.Registry)
	}

	return &Instrumented{
		lim:      tb,
		name:     name,
		registry: registry,
		enabled:  config.Enabled,
	}
}

// TryAcquire attempts to consume n tokens, recording the outcome.
func (il *Instrumented) TryAcquire(n int) error {
	err := il.lim.TryAcquire(n)

	if il.enabled {
		il.registry.RateLimitRequests.WithLabelValues(limiterType, il.name).Add(float64(n))
		if err == nil {
			il.registry.RateLimitAllowed.WithLabelValues(limiterType, il.name).Add(float64(n))
		} else {
			il.registry.RateLimitDenied.WithLabelValues(limiterType, il.name).Add(float64(n))
			if retry, ok := gerrors.RetryAfter(err); ok {
				il.registry.RateLimitRetry.WithLabelValues(limiterType, il.name).Observe(retry.Seconds())
			}
		}
		il.registry.RateLimitAvailable.WithLabelValues(limiterType, il.name).Set(float64(il.lim.Available()))
	}

	return err
}

// Available returns the current token count and refreshes the gauge.
func (il *Instrumented) Available() int {
	available := il.lim.Available()
	if il.enabled {
		il.registry.RateLimitAvailable.WithLabelValues(limiterType, il.name).Set(float64(available))
	}
	return available
}

// Capacity returns the configured maximum number of tokens.
func (il *Instrumented) Capacity() int {
	return il.lim.Capacity()
}

// Rate returns the configured refill rate in tokens per second.
func (il *Instrumented) Rate() float64 {
	return il.lim.Rate()
}

// TimeUntilNext reports how long until the next token is replenished.
func (il *Instrumented) TimeUntilNext() (time.Duration, bool) {
	return il.lim.TimeUntilNext()
}

// UpdateConfig installs a new capacity and rate, counting successful updates.
func (il *Instrumented) UpdateConfig(capacity int, rate float64) error {
	err := il.lim.UpdateConfig(capacity, rate)
	if err == nil && il.enabled {
		il.registry.ConfigUpdates.WithLabelValues(limiterType, il.name).Inc()
	}
	return err
}

// EnableMetrics enables metrics collection.
func (il *Instrumented) EnableMetrics(config metrics.Config) error {
	il.enabled = config.Enabled
	if config.Metrics != nil {
		il.registry = config.Metrics
	} else if config.Registry != nil {
		il.registry = metrics.NewRegistry(config.Registry)
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (il *Instrumented) DisableMetrics() {
	il.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (il *Instrumented) MetricsEnabled() bool {
	return il.enabled
}
