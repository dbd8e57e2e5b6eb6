package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analyzeRunsTotal     *prometheus.CounterVec
	analyzeDuration      *prometheus.HistogramVec
	analyzePages         *prometheus.HistogramVec
	summaryRequestsTotal *prometheus.CounterVec
	queryRequestsTotal   *prometheus.CounterVec
	cleanupRemovedTotal  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visudoc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visudoc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "visudoc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analyzeRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "analyze_runs_total",
			Help:      "Total document analysis runs by outcome.",
		},
		[]string{"service", "status", "doc_type"},
	)
	analyzeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "analyze_duration_seconds",
			Help:      "Document analysis duration in seconds, OCR included.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"service"},
	)
	analyzePages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "analyze_pages",
			Help:      "Distribution of pages recognized per analyzed document.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
		[]string{"service"},
	)
	summaryRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "summary_requests_total",
			Help:      "Total summarization requests by summary type and outcome.",
		},
		[]string{"service", "summary_type", "status"},
	)
	queryRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "query_requests_total",
			Help:      "Total document QA requests by outcome.",
		},
		[]string{"service", "status"},
	)
	cleanupRemovedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visudoc",
			Subsystem: "pipeline",
			Name:      "cleanup_removed_total",
			Help:      "Total documents evicted by cleanup runs.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analyzeRunsTotal,
		analyzeDuration,
		analyzePages,
		summaryRequestsTotal,
		queryRequestsTotal,
		cleanupRemovedTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		analyzeRunsTotal:     analyzeRunsTotal,
		analyzeDuration:      analyzeDuration,
		analyzePages:         analyzePages,
		summaryRequestsTotal: summaryRequestsTotal,
		queryRequestsTotal:   queryRequestsTotal,
		cleanupRemovedTotal:  cleanupRemovedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordAnalyzeRun(service, status, docType string, pages int, duration time.Duration) {
	if docType == "" {
		docType = "unknown"
	}
	m.analyzeRunsTotal.WithLabelValues(service, status, docType).Inc()
	m.analyzeDuration.WithLabelValues(service).Observe(duration.Seconds())
	if pages > 0 {
		m.analyzePages.WithLabelValues(service).Observe(float64(pages))
	}
}

func (m *HTTPServerMetrics) RecordSummaryRequest(service, summaryType, status string) {
	if summaryType == "" {
		summaryType = "unknown"
	}
	m.summaryRequestsTotal.WithLabelValues(service, summaryType, status).Inc()
}

func (m *HTTPServerMetrics) RecordQueryRequest(service, status string) {
	m.queryRequestsTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordCleanup(service string, removed int) {
	if removed <= 0 {
		return
	}
	m.cleanupRemovedTotal.WithLabelValues(service).Add(float64(removed))
}

// statusRecorder captures the status code for the request counter labels.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
