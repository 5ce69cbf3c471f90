package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSOriginMatching(t *testing.T) {
	allowed := []string{"http://localhost:*", "https://app.clinic.test/", " ", "HTTPS://Admin.Clinic.Test"}
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"exact", "https://app.clinic.test", true},
		{"trailing slash in config", "https://app.clinic.test/", true},
		{"case insensitive", "https://admin.clinic.test", true},
		{"any port", "http://localhost:3000", true},
		{"other port", "http://localhost:5173", true},
		{"no port", "http://localhost", false},
		{"port pattern is not a prefix match", "http://localhost:3000.evil.test", false},
		{"other scheme", "https://localhost:3000", false},
		{"unknown host", "https://evil.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(allowed)(next).ServeHTTP(rec, req)

			if !called {
				t.Fatalf("expected handler to be called for simple requests")
			}
			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.want && got != tt.origin {
				t.Fatalf("expected origin %q to be echoed, got %q", tt.origin, got)
			}
			if !tt.want && got != "" {
				t.Fatalf("expected no allow origin header, got %q", got)
			}
			if tt.want && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Fatalf("expected credentials to be allowed")
			}
		})
	}
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Origin", "https://reception.example")
	rec := httptest.NewRecorder()

	CORS([]string{"*"})(next).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://reception.example" {
		t.Fatalf("expected origin echoed instead of *, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != "X-Request-ID" {
		t.Fatalf("expected request id to be exposed, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		status int
	}{
		{"allowed origin", "http://localhost:3000", http.StatusNoContent},
		{"refused origin", "https://evil.test", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
			req := httptest.NewRequest(http.MethodOptions, "/appointments/7", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
			rec := httptest.NewRecorder()

			CORS([]string{"http://localhost:*"})(next).ServeHTTP(rec, req)

			if called {
				t.Fatalf("expected preflight to stop before the handler")
			}
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestCORSPlainOptionsReachesHandler(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	rec := httptest.NewRecorder()

	CORS([]string{"http://localhost:*"})(next).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected OPTIONS without Origin to reach the handler")
	}
}
