package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/basecamp/visit-recorder/internal/store"
)

type HealthCheckConsumer interface {
	HealthCheckCompleted(success bool)
}

// StoreHealthCheck pings the store on an interval and reports each result to
// its consumer. The first check runs immediately.
type StoreHealthCheck struct {
	consumer HealthCheckConsumer
	pinger   store.Pinger
	interval time.Duration
	timeout  time.Duration

	shutdown chan (bool)
}

func NewStoreHealthCheck(consumer HealthCheckConsumer, pinger store.Pinger, interval time.Duration, timeout time.Duration) *StoreHealthCheck {
	hc := &StoreHealthCheck{
		consumer: consumer,
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,

		shutdown: make(chan bool),
	}

	go hc.run()
	return hc
}

func (hc *StoreHealthCheck) Close() {
	close(hc.shutdown)
}

// Private

func (hc *StoreHealthCheck) run() {
	ticker := time.NewTicker(hc.interval)
	defer ticker.Stop()

	hc.check()

	for {
		select {
		case <-ticker.C:
			hc.check()

		case <-hc.shutdown:
			return
		}
	}
}

func (hc *StoreHealthCheck) check() {
	ctx, cancel := context.WithTimeout(context.Background(), hc.timeout)
	defer cancel()

	err := hc.pinger.Ping(ctx)
	if err != nil {
		slog.Debug("Store healthcheck failed", "error", err)
		hc.consumer.HealthCheckCompleted(false)
		return
	}

	hc.consumer.HealthCheckCompleted(true)
}

// StoreHealth remembers the latest health check result and serves it on the
// health endpoint.
type StoreHealth struct {
	healthy atomic.Bool
	checked atomic.Bool
}

func NewStoreHealth() *StoreHealth {
	return &StoreHealth{}
}

func (h *StoreHealth) Healthy() bool {
	return h.healthy.Load()
}

func (h *StoreHealth) HealthCheckCompleted(success bool) {
	previous := h.healthy.Swap(success)
	first := !h.checked.Swap(true)

	if first || previous != success {
		if success {
			slog.Info("Store is healthy")
		} else {
			slog.Warn("Store is unhealthy")
		}
	}
}

func (h *StoreHealth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Healthy() {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}
