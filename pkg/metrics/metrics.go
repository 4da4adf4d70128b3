package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gorate components.
type Registry struct {
	RateLimitRequests  *prometheus.CounterVec
	RateLimitAllowed   *prometheus.CounterVec
	RateLimitDenied    *prometheus.CounterVec
	RateLimitAvailable *prometheus.GaugeVec
	RateLimitRetry     *prometheus.HistogramVec
	ConfigUpdates      *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gorate components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		RateLimitRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "requests_total",
				Help:      "Total number of units requested from limiters",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "allowed_total",
				Help:      "Total number of units admitted",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "denied_total",
				Help:      "Total number of units rejected",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitAvailable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "available_units",
				Help:      "Units currently available in the limiter",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		RateLimitRetry: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "retry_after_seconds",
				Help:      "Suggested back-off returned with rejections",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"limiter_type", "limiter_name"},
		),

		ConfigUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorate",
				Subsystem: "ratelimit",
				Name:      "config_updates_total",
				Help:      "Total number of live reconfigurations applied",
			},
			[]string{"limiter_type", "limiter_name"},
		),
	}
}
