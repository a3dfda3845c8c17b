package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFutureHandler(t *testing.T) {
	t.Run("HTML", func(t *testing.T) {
		status, body := testVisit(NewFutureHandler(RenderHTML))

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "<title>Future</title>")
	})

	t.Run("Text", func(t *testing.T) {
		status, body := testVisit(NewFutureHandler(RenderText))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Future\nNothing recorded here yet.\n", body)
	})

	t.Run("Always renders the same page", func(t *testing.T) {
		_, first := testVisit(NewFutureHandler(RenderHTML))
		_, second := testVisit(NewFutureHandler(RenderHTML))

		assert.Equal(t, first, second)
	})
}
