package server

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
)

type RequestIDMiddleware struct {
	next http.Handler
}

func WithRequestIDMiddleware(next http.Handler) http.Handler {
	return &RequestIDMiddleware{
		next: next,
	}
}

// ServeHTTP assigns an ID to requests that arrive without one and echoes it
// back to the client, so an error page can be matched to its log line.
func (h *RequestIDMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
		r.Header.Set(requestIDHeader, id)
	}

	w.Header().Set(requestIDHeader, id)
	h.next.ServeHTTP(w, r)
}
