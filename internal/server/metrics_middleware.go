package server

import (
	"net/http"
	"time"

	"github.com/basecamp/visit-recorder/internal/metrics"
)

type MetricsMiddleware struct {
	route string
	next  http.Handler
}

func WithMetricsMiddleware(route string, next http.Handler) http.Handler {
	return &MetricsMiddleware{
		route: route,
		next:  next,
	}
}

func (h *MetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writer := newTrackingResponseWriter(w)

	metrics.Tracker.AddInflightRequest(h.route)
	defer metrics.Tracker.SubtractInflightRequest(h.route)

	started := time.Now()
	h.next.ServeHTTP(writer, r)

	metrics.Tracker.TrackRequest(h.route, r.Method, writer.statusCode, time.Since(started))
}
