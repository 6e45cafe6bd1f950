package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records pipeline, cache and server events as Prometheus
// metrics. It implements [PipelineHooks], [CacheHooks] and [ServerHooks].
type PrometheusHooks struct {
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	LevelCount    prometheus.Histogram
	CacheEvents   *prometheus.CounterVec
	CacheSetBytes *prometheus.HistogramVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypertower_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		StageErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypertower_stage_errors_total",
				Help: "Total number of failed pipeline stages",
			},
			[]string{"stage"},
		),
		LevelCount: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hypertower_levels",
				Help:    "Number of top-level levels per layered graph",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		CacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypertower_cache_events_total",
				Help: "Cache lookups and writes by stage and outcome",
			},
			[]string{"key_type", "event"},
		),
		CacheSetBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypertower_cache_set_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"key_type"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypertower_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypertower_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypertower_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),
	}
}

func (h *PrometheusHooks) stage(name string, d time.Duration, err error) {
	h.StageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		h.StageErrors.WithLabelValues(name).Inc()
	}
}

func (h *PrometheusHooks) OnLevelsStart(context.Context, int) {}

func (h *PrometheusHooks) OnLevelsComplete(_ context.Context, levels int, d time.Duration, err error) {
	h.stage("levels", d, err)
	if err == nil {
		h.LevelCount.Observe(float64(levels))
	}
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _ string, d time.Duration, err error) {
	h.stage("layout", d, err)
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.stage("render", d, err)
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheEvents.WithLabelValues(keyType, "set").Inc()
	h.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {
	h.HTTPInFlight.Inc()
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.HTTPInFlight.Dec()
	h.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ ServerHooks   = (*PrometheusHooks)(nil)
)
