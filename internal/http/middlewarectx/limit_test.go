package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(newNoopLogger())(next)

	okCount := 0
	limitedCount := 0
	for range 300 {
		req := httptest.NewRequest(http.MethodPost, "/api", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		switch rr.Code {
		case http.StatusOK:
			okCount++
		case http.StatusTooManyRequests:
			limitedCount++
		default:
			t.Fatalf("unexpected status %d", rr.Code)
		}
	}

	// Всплеск из 300 запросов заведомо превышает бюджет лимитера.
	assert.Positive(t, okCount)
	assert.Positive(t, limitedCount)
}
