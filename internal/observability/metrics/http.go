package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsTotal     *prometheus.CounterVec
	clausesPerDocument prometheus.Histogram
	analysisDuration   prometheus.Histogram
	riskLevelsTotal    *prometheus.CounterVec
	degradedTotal      *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lca",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lca",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lca",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lca",
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Total analyzed documents by outcome.",
		},
		[]string{"service", "outcome"},
	)
	clausesPerDocument := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lca",
			Subsystem: "analysis",
			Name:      "clauses_per_document",
			Help:      "Distribution of clauses per analyzed document.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
	)
	analysisDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lca",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Full pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	riskLevelsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lca",
			Subsystem: "analysis",
			Name:      "clause_risk_levels_total",
			Help:      "Total scored clauses by predicted risk level.",
		},
		[]string{"service", "level"},
	)
	degradedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lca",
			Subsystem: "analysis",
			Name:      "degraded_total",
			Help:      "Total clause results produced in degraded mode.",
		},
		[]string{"service", "phase"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsTotal,
		clausesPerDocument,
		analysisDuration,
		riskLevelsTotal,
		degradedTotal,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		documentsTotal:     documentsTotal,
		clausesPerDocument: clausesPerDocument,
		analysisDuration:   analysisDuration,
		riskLevelsTotal:    riskLevelsTotal,
		degradedTotal:      degradedTotal,
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

// RecordAnalysis observes one completed pipeline run.
func (m *HTTPServerMetrics) RecordAnalysis(service string, analysis *domain.Analysis, duration time.Duration) {
	m.documentsTotal.WithLabelValues(service, "ok").Inc()
	m.clausesPerDocument.Observe(float64(analysis.TotalClauses))
	m.analysisDuration.Observe(duration.Seconds())

	for _, record := range analysis.Records {
		m.riskLevelsTotal.WithLabelValues(service, record.Phase3.Level).Inc()
		if record.Phase1.PredictedType == domain.UnclassifiedType {
			m.degradedTotal.WithLabelValues(service, "phase1").Inc()
		}
		if record.Phase3.Level == domain.UnknownRiskLevel {
			m.degradedTotal.WithLabelValues(service, "phase3").Inc()
		}
	}
}

// RecordRejection counts a request that never produced an analysis.
func (m *HTTPServerMetrics) RecordRejection(service, outcome string) {
	m.documentsTotal.WithLabelValues(service, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
