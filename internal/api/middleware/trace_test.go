package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	buf, log := logger.NewTestLogger()

	var seenTraceID string
	var seenLogger bool
	handler := Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		reqLog, ok := logger.FromContext(r.Context())
		seenLogger = ok
		if ok {
			reqLog.Info("inside handler")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotEmpty(t, seenTraceID)
	assert.True(t, seenLogger)
	assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
	assert.True(t, buf.HasEntry(slog.LevelDebug, "request started"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, seenTraceID, entry["trace_id"])
	}
}

func TestTrace_UniquePerRequest(t *testing.T) {
	handler := Trace(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, first.Header().Get(shared.TraceIDHeader), second.Header().Get(shared.TraceIDHeader))
}
