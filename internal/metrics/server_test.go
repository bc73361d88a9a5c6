package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_ExposesScanMetrics(t *testing.T) {
	ScanIterations.WithLabelValues(OutcomeScanning).Inc()

	srv := NewServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sdr_radar_scan_iterations_total")
	assert.Contains(t, string(body), "sdr_radar_device_errors_total")
}

func TestNewServer_UnknownPath(t *testing.T) {
	srv := NewServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 404, rec.Code)
}
