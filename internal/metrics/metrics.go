// Package metrics holds the Prometheus instrumentation for the dashboard
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experienceintel_predictions_total",
			Help: "Total number of model invocations.",
		},
		[]string{"model"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experienceintel_prediction_errors_total",
			Help: "Total number of failed model invocations.",
		},
		[]string{"model"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "experienceintel_prediction_duration_seconds",
			Help:    "Duration of a single model invocation.",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"model"},
	)

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "experienceintel_render_duration_seconds",
		Help:    "Duration of a full dashboard render.",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
	})

	RenderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "experienceintel_render_failures_total",
		Help: "Total number of aborted dashboard renders.",
	})

	RiskTiers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experienceintel_churn_risk_tier_total",
			Help: "Churn predictions by risk tier.",
		},
		[]string{"tier"},
	)

	EngagementLabels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experienceintel_engagement_label_total",
			Help: "Engagement predictions by label.",
		},
		[]string{"label"},
	)

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "experienceintel_dashboard_cache_hits_total",
		Help: "Dashboard renders served from cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "experienceintel_dashboard_cache_misses_total",
		Help: "Dashboard renders computed from scratch.",
	})

	ArtifactsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "experienceintel_artifact_loaded",
			Help: "1 when the named artifact is loaded and bound.",
		},
		[]string{"artifact", "kind", "version"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experienceintel_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "experienceintel_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "experienceintel_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
)

// RecordPrediction records one model invocation
func RecordPrediction(model string, start time.Time, err error) {
	PredictionsTotal.WithLabelValues(model).Inc()
	PredictionDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		PredictionErrors.WithLabelValues(model).Inc()
	}
}

// RecordRender records one dashboard render
func RecordRender(start time.Time, err error) {
	RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		RenderFailures.Inc()
	}
}

// RecordEngagement counts an engagement label
func RecordEngagement(label int) {
	EngagementLabels.WithLabelValues(strconv.Itoa(label)).Inc()
}

// RecordHTTP records a finished HTTP request
func RecordHTTP(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
