package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()

		PingHandler(func(context.Context) error { return nil })(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Dependency down", func(t *testing.T) {
		rec := httptest.NewRecorder()

		PingHandler(func(context.Context) error { return errors.New("down") })(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
