package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

var (
	contextKeyErrorResponse = contextKey("error-response")
)

type ErrorPageArguments struct {
	Message string
}

type errorResponseContent struct {
	StatusCode int
	Arguments  ErrorPageArguments
}

type ErrorPageMiddleware struct {
	template *template.Template
	next     http.Handler
}

func WithErrorPageMiddleware(next http.Handler) http.Handler {
	return &ErrorPageMiddleware{
		template: htmlPages,
		next:     next,
	}
}

// SetErrorResponse asks the surrounding ErrorPageMiddleware to render an
// error page once the handler returns. Handlers must not write a body after
// calling it.
func SetErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, arguments ErrorPageArguments) {
	errorResponse, ok := r.Context().Value(contextKeyErrorResponse).(*errorResponseContent)
	if ok {
		errorResponse.StatusCode = statusCode
		errorResponse.Arguments = arguments
	} else {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

func (h *ErrorPageMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var errorResponseContext errorResponseContent
	ctx := context.WithValue(r.Context(), contextKeyErrorResponse, &errorResponseContext)
	r = r.WithContext(ctx)

	h.next.ServeHTTP(w, r)

	if errorResponseContext.StatusCode != 0 {
		h.respondWithErrorPage(w, errorResponseContext.StatusCode, errorResponseContext.Arguments)
	}
}

// Private

func (h *ErrorPageMiddleware) respondWithErrorPage(w http.ResponseWriter, statusCode int, arguments ErrorPageArguments) {
	template := h.getTemplate(statusCode)
	if template == nil {
		slog.Debug("No error page template for status", "status", statusCode)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	err := template.Execute(w, arguments)
	if err != nil {
		slog.Error("Failed to render error page template", "name", template.Name(), "error", err)
		h.writeErrorWithoutTemplate(w, statusCode)
	}
}

func (h *ErrorPageMiddleware) getTemplate(statusCode int) *template.Template {
	if h.template == nil {
		return nil
	}

	return h.template.Lookup(fmt.Sprintf("%d.html", statusCode))
}

func (h *ErrorPageMiddleware) writeErrorWithoutTemplate(w http.ResponseWriter, statusCode int) {
	fmt.Fprintf(w, "<h1>%d %s</h1>", statusCode, http.StatusText(statusCode))
}
