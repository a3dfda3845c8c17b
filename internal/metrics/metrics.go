package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type tracker interface {
	TrackRequest(route, method string, status int, duration time.Duration)
	AddInflightRequest(route string)
	SubtractInflightRequest(route string)
	TrackVisitRecorded()
	TrackStoreError(operation string)
}

var Tracker tracker = &nullTracker{}

// Enable switches Tracker to a Prometheus tracker backed by a fresh registry
// and returns the handler exposing it. Each call starts from zero.
func Enable() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	Tracker = newPrometheusTracker(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func Disable() {
	Tracker = &nullTracker{}
}

type nullTracker struct{}

func (nullTracker) TrackRequest(route, method string, status int, dur time.Duration) {}
func (nullTracker) AddInflightRequest(route string)                                  {}
func (nullTracker) SubtractInflightRequest(route string)                             {}
func (nullTracker) TrackVisitRecorded()                                              {}
func (nullTracker) TrackStoreError(operation string)                                 {}

type prometheusTracker struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	inflightRequests *prometheus.GaugeVec
	visitsRecorded   prometheus.Counter
	storeErrors      *prometheus.CounterVec
}

// Private

func newPrometheusTracker(registerer prometheus.Registerer) *prometheusTracker {
	tracker := &prometheusTracker{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "http_requests_total",
				Namespace: "visit",
				Subsystem: "recorder",
				Help:      "HTTP requests processed, labeled by route, status code and method.",
			},
			[]string{"route", "method", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "http_request_duration_seconds",
				Namespace: "visit",
				Subsystem: "recorder",
				Help:      "Duration of HTTP requests, labeled by route, status code and method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),

		inflightRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:      "http_in_flight_requests",
				Namespace: "visit",
				Subsystem: "recorder",
				Help:      "Number of in-flight HTTP requests, labeled by route.",
			},
			[]string{"route"},
		),

		visitsRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:      "visits_recorded_total",
				Namespace: "visit",
				Subsystem: "recorder",
				Help:      "Timestamps successfully pushed to the visit log.",
			},
		),

		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "store_errors_total",
				Namespace: "visit",
				Subsystem: "recorder",
				Help:      "Failed visit log operations, labeled by operation.",
			},
			[]string{"operation"},
		),
	}

	registerer.MustRegister(
		tracker.httpRequests,
		tracker.httpDuration,
		tracker.inflightRequests,
		tracker.visitsRecorded,
		tracker.storeErrors,
	)

	return tracker
}

func (p *prometheusTracker) TrackRequest(route, method string, status int, duration time.Duration) {
	method = normalizeMethod(method)
	statusString := strconv.Itoa(status)

	p.httpRequests.WithLabelValues(route, method, statusString).Inc()
	p.httpDuration.WithLabelValues(route, method, statusString).Observe(duration.Seconds())
}

func (p *prometheusTracker) AddInflightRequest(route string) {
	p.inflightRequests.WithLabelValues(route).Inc()
}

func (p *prometheusTracker) SubtractInflightRequest(route string) {
	p.inflightRequests.WithLabelValues(route).Dec()
}

func (p *prometheusTracker) TrackVisitRecorded() {
	p.visitsRecorded.Inc()
}

func (p *prometheusTracker) TrackStoreError(operation string) {
	p.storeErrors.WithLabelValues(operation).Inc()
}

func normalizeMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost,
		http.MethodPut, http.MethodPatch, http.MethodDelete,
		http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "OTHER"
	}
}
