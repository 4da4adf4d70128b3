/*
Package metrics provides Prometheus instrumentation for gorate limiters.

Metrics are collected through a Registry of counters, gauges, and
histograms labeled by limiter type and name. Each limiter package offers
an Instrumented decorator that records admissions, rejections, suggested
back-off durations, and reconfigurations without touching the lock-free
hot path of the underlying limiter.

Basic usage:

	limiter := bucket.NewWithMetrics(100, 50, "api")

	// Expose metrics via the standard promhttp handler:
	http.Handle("/metrics", promhttp.Handler())

Custom registries can be supplied through Config to avoid collisions in
tests or multi-tenant processes:

	reg := prometheus.NewRegistry()
	cfg := metrics.Config{Enabled: true, Registry: reg}

The collectors register with Prometheus once per Registry, so when
several decorators record onto the same Prometheus registry they must
share one Registry through Config.Metrics:

	shared := metrics.NewRegistry(reg)
	cfg := metrics.Config{Enabled: true, Metrics: shared}
*/
package metrics
