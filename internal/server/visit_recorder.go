package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/basecamp/visit-recorder/internal/metrics"
	"github.com/basecamp/visit-recorder/internal/store"
)

const (
	homeTitle = "Home"
)

type VisitRecorderOptions struct {
	Render          RenderMode
	TimestampFormat TimestampFormat
	Audience        string
	FutureEnabled   bool
	Atomic          bool
	Debug           bool
	Clock           func() time.Time
}

// VisitRecorder pushes the time of every visit onto the visit log and renders
// the whole log back, newest first.
//
// Unless Atomic is set, the push and the read are separate store operations,
// so concurrent visitors may see each other's entries (or miss them) in
// between.
type VisitRecorder struct {
	visits  store.VisitLog
	options VisitRecorderOptions
}

func NewVisitRecorder(visits store.VisitLog, options VisitRecorderOptions) *VisitRecorder {
	if options.Clock == nil {
		options.Clock = time.Now
	}

	return &VisitRecorder{
		visits:  visits,
		options: options,
	}
}

func (v *VisitRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	times, err := v.record(r.Context())
	if err != nil {
		slog.Error("Unable to record visit", "error", err, "request_id", r.Header.Get("X-Request-ID"))
		SetErrorResponse(w, r, http.StatusInternalServerError, v.errorArguments(err))
		return
	}

	page := Page{
		Title:         homeTitle,
		Audience:      v.options.Audience,
		Times:         times,
		FutureEnabled: v.options.FutureEnabled,
	}

	err = renderPage(w, v.options.Render, "index", page)
	if err != nil {
		slog.Error("Unable to render visits", "error", err)
		SetErrorResponse(w, r, http.StatusInternalServerError, v.errorArguments(err))
	}
}

// Private

func (v *VisitRecorder) record(ctx context.Context) ([]string, error) {
	stamp := v.options.TimestampFormat.Format(v.options.Clock())

	if v.options.Atomic {
		times, err := v.visits.PushAndRange(ctx, stamp)
		if err != nil {
			metrics.Tracker.TrackStoreError("push_and_range")
			return nil, err
		}
		metrics.Tracker.TrackVisitRecorded()
		return times, nil
	}

	err := v.visits.Push(ctx, stamp)
	if err != nil {
		metrics.Tracker.TrackStoreError("push")
		return nil, err
	}
	metrics.Tracker.TrackVisitRecorded()

	times, err := v.visits.Range(ctx)
	if err != nil {
		metrics.Tracker.TrackStoreError("range")
		return nil, err
	}

	return times, nil
}

func (v *VisitRecorder) errorArguments(err error) ErrorPageArguments {
	if !v.options.Debug {
		return ErrorPageArguments{}
	}
	return ErrorPageArguments{Message: err.Error()}
}
