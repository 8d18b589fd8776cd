package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := NewMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}

	body := scrape(t, m)
	if !strings.Contains(body, `payrecon_http_requests_total{code="418",route="unknown"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
}

func TestRunMetrics(t *testing.T) {
	m := NewMetrics()
	m.RunCompleted("ok", 120*time.Millisecond)
	m.RunCompleted("ok", 80*time.Millisecond)
	m.RunCompleted("error", 5*time.Millisecond)
	m.PageFetched("/payments")

	body := scrape(t, m)
	if !strings.Contains(body, `payrecon_runs_total{outcome="ok"} 2`) {
		t.Fatalf("run counter missing:\n%s", body)
	}
	if !strings.Contains(body, `payrecon_runs_total{outcome="error"} 1`) {
		t.Fatalf("error run counter missing:\n%s", body)
	}
	if !strings.Contains(body, `payrecon_provider_pages_total{resource="/payments"} 1`) {
		t.Fatalf("page counter missing:\n%s", body)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RunCompleted("ok", time.Second)
	m.PageFetched("/contracts")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics handler status = %d", rec.Code)
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}
