package server

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"io"
	"net/http"
	texttemplate "text/template"
)

var (
	//go:embed pages
	pages embed.FS

	htmlPages = htmltemplate.Must(htmltemplate.ParseFS(pages, "pages/*.html"))
	textPages = texttemplate.Must(texttemplate.ParseFS(pages, "pages/*.txt"))
)

type Page struct {
	Title         string
	Audience      string
	Times         []string
	FutureEnabled bool
}

type pageExecutor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// renderPage renders the named page fully before writing anything, so a
// template failure never leaves a partial response behind.
func renderPage(w http.ResponseWriter, mode RenderMode, name string, page Page) error {
	var executor pageExecutor = htmlPages
	contentType := "text/html; charset=utf-8"
	templateName := name + ".html"

	if mode == RenderText {
		executor = textPages
		contentType = "text/plain; charset=utf-8"
		templateName = name + ".txt"
	}

	var buf bytes.Buffer
	err := executor.ExecuteTemplate(&buf, templateName, page)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)

	return nil
}
