package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	appconfig "github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

func TestBuildHandlerServesHealthAndMetrics(t *testing.T) {
	cfg := &appconfig.Config{MockJWTSecret: "s", CORSAllowedOrigins: []string{"*"}}
	handler, err := buildHandler(cfg, logging.Discard(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "clinic_mock_backend_requests_total") {
		t.Fatalf("expected backend counter in metrics output")
	}
}
