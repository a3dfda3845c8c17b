package server

import (
	"log/slog"
	"net/http"
)

const (
	futureTitle = "Future"
)

// FutureHandler serves a static page that never touches the visit log.
type FutureHandler struct {
	render RenderMode
}

func NewFutureHandler(render RenderMode) *FutureHandler {
	return &FutureHandler{render: render}
}

func (h *FutureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := renderPage(w, h.render, "future", Page{Title: futureTitle})
	if err != nil {
		slog.Error("Unable to render future page", "error", err)
		SetErrorResponse(w, r, http.StatusInternalServerError, ErrorPageArguments{})
	}
}
