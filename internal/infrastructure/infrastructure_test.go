package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/internal/config"
)

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))
}

func TestInitializeLoggerConsole(t *testing.T) {
	logger, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Must not panic with a trace-carrying context.
	logger.InfoContext(WithTraceID(context.Background(), "t1"), "hello")
}

func TestInitializeLoggerFile(t *testing.T) {
	path := t.TempDir() + "/app.log"
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Info("to file")
	assert.FileExists(t, path)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "debug", want: "DEBUG"},
		{input: "info", want: "INFO"},
		{input: "warn", want: "WARN"},
		{input: "error", want: "ERROR"},
		{input: "bogus", want: "INFO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input).String(), "level %q", tt.input)
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest(context.Background(), http.MethodGet, "/x", 200, time.Millisecond)
	m.RecordDatasetLoad(context.Background())
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestMetricsPipeline(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	defer m.Shutdown(context.Background())

	m.RecordRequest(context.Background(), http.MethodGet, "/api/dashboard/summary", 200, 5*time.Millisecond)
	m.RecordDatasetLoad(context.Background())

	rec := httptest.NewRecorder()
	m.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "dataset_loads_total")
}
