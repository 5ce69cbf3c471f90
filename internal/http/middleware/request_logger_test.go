package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wolfman30/dental-clinic-client/internal/observability/metrics"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: "info", Format: "json", Output: &buf})
	reg := prometheus.NewRegistry()
	m := metrics.NewBackendMetrics(reg)

	handler := RequestLogger(logger, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Appointment not found")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/appointments/7", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-1" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	line := buf.String()
	for _, want := range []string{`"msg":"request completed"`, `"status":404`, `"request_id":"req-1"`, `"path":"/appointments/7"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
	n, err := testutil.GatherAndCount(reg, "clinic_mock_backend_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one series, got %d", n)
	}
}
