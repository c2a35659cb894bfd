package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for screener_runs_total
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
)

// Registry holds the screener's Prometheus metrics.
// A nil *Registry is valid and records nothing.
// ⭐ SSOT: 메트릭 정의는 여기서만
type Registry struct {
	reg *prometheus.Registry

	Runs            *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	Fallbacks       prometheus.Counter
	BreakerOpen     prometheus.Counter
}

// New creates a registry with all screener metrics registered
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_runs_total",
				Help: "Total screening runs by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),

		BackendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_backend_duration_seconds",
				Help:    "Duration of screening backend calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"mode"},
		),

		Fallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "screener_fallbacks_total",
				Help: "Total screening calls answered by the fallback responder",
			},
		),

		BreakerOpen: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "screener_breaker_rejections_total",
				Help: "Total backend calls rejected by an open circuit breaker",
			},
		),
	}

	r.reg.MustRegister(
		r.Runs,
		r.BackendDuration,
		r.Fallbacks,
		r.BreakerOpen,
		collectors.NewGoCollector(),
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// RecordRun counts a finished screening run
func (r *Registry) RecordRun(mode, outcome string) {
	if r == nil {
		return
	}
	r.Runs.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeFallback {
		r.Fallbacks.Inc()
	}
}

// ObserveBackend records one backend call duration
func (r *Registry) ObserveBackend(mode string, d time.Duration) {
	if r == nil {
		return
	}
	r.BackendDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordBreakerRejection counts a call refused by an open breaker
func (r *Registry) RecordBreakerRejection() {
	if r == nil {
		return
	}
	r.BreakerOpen.Inc()
}
