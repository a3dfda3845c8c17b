package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey string

type LoggingMiddleware struct {
	logger   *slog.Logger
	httpPort int
	next     http.Handler
}

func WithLoggingMiddleware(logger *slog.Logger, httpPort int, next http.Handler) http.Handler {
	return &LoggingMiddleware{
		logger:   logger,
		httpPort: httpPort,
		next:     next,
	}
}

func (h *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writer := newTrackingResponseWriter(w)

	started := time.Now()
	h.next.ServeHTTP(writer, r)
	elapsed := time.Since(started)

	userAgent := r.Header.Get("User-Agent")
	reqContent := r.Header.Get("Content-Type")
	respContent := writer.Header().Get("Content-Type")
	remoteAddr := r.Header.Get("X-Forwarded-For")
	requestID := r.Header.Get("X-Request-ID")
	if remoteAddr == "" {
		remoteAddr = r.RemoteAddr
	}

	level := slog.LevelInfo
	if writer.statusCode >= http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	h.logger.LogAttrs(context.Background(), level, "Request",
		slog.String("host", r.Host),
		slog.Int("port", h.httpPort),
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID),
		slog.Int("status", writer.statusCode),
		slog.Int64("duration", elapsed.Nanoseconds()),
		slog.String("method", r.Method),
		slog.Int64("req_content_length", r.ContentLength),
		slog.String("req_content_type", reqContent),
		slog.Int64("resp_content_length", writer.bytesWritten),
		slog.String("resp_content_type", respContent),
		slog.String("remote_addr", remoteAddr),
		slog.String("user_agent", userAgent),
		slog.String("query", r.URL.RawQuery),
	)
}

type trackingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func newTrackingResponseWriter(w http.ResponseWriter) *trackingResponseWriter {
	return &trackingResponseWriter{w, http.StatusOK, 0}
}

// WriteHeader is used to capture the status code
func (r *trackingResponseWriter) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Write is used to capture the amount of data written
func (r *trackingResponseWriter) Write(b []byte) (int, error) {
	bytesWritten, err := r.ResponseWriter.Write(b)
	r.bytesWritten += int64(bytesWritten)
	return bytesWritten, err
}

func (r *trackingResponseWriter) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
