package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "GET", normalizeMethod("GET"))
	assert.Equal(t, "POST", normalizeMethod("POST"))
	assert.Equal(t, "PATCH", normalizeMethod("PATCH"))

	assert.Equal(t, "OTHER", normalizeMethod("CUSTOM"))
	assert.Equal(t, "OTHER", normalizeMethod("OTHER"))
	assert.Equal(t, "OTHER", normalizeMethod(""))
}

func TestPrometheusTracker_CountsRequestsByRoute(t *testing.T) {
	tracker := newPrometheusTracker(prometheus.NewRegistry())

	tracker.TrackRequest("home", http.MethodGet, http.StatusOK, time.Millisecond)
	tracker.TrackRequest("home", http.MethodGet, http.StatusOK, time.Millisecond)
	tracker.TrackRequest("home", http.MethodGet, http.StatusInternalServerError, time.Millisecond)
	tracker.TrackRequest("future", "BREW", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(tracker.httpRequests.WithLabelValues("home", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tracker.httpRequests.WithLabelValues("home", "GET", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tracker.httpRequests.WithLabelValues("future", "OTHER", "200")))
}

func TestPrometheusTracker_InflightRequests(t *testing.T) {
	tracker := newPrometheusTracker(prometheus.NewRegistry())

	tracker.AddInflightRequest("home")
	tracker.AddInflightRequest("home")
	tracker.SubtractInflightRequest("home")

	assert.Equal(t, 1.0, testutil.ToFloat64(tracker.inflightRequests.WithLabelValues("home")))
}

func TestPrometheusTracker_VisitsAndStoreErrors(t *testing.T) {
	tracker := newPrometheusTracker(prometheus.NewRegistry())

	tracker.TrackVisitRecorded()
	tracker.TrackVisitRecorded()
	tracker.TrackStoreError("range")

	assert.Equal(t, 2.0, testutil.ToFloat64(tracker.visitsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(tracker.storeErrors.WithLabelValues("range")))
	assert.Equal(t, 0.0, testutil.ToFloat64(tracker.storeErrors.WithLabelValues("push")))
}

func TestEnable_CanBeCalledRepeatedly(t *testing.T) {
	t.Cleanup(Disable)

	assert.NotPanics(t, func() {
		Enable()
		Enable()
	})

	assert.IsType(t, &prometheusTracker{}, Tracker)

	Disable()
	assert.IsType(t, &nullTracker{}, Tracker)
}
