package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/jobboard/pkg/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMiddlewareRecordsPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := metrics.Middleware(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/items/42", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rec.Code)
	}

	body := scrape(t)
	want := `jobboard_http_requests_total{method="GET",route="GET /items/{id}",status="418"}`
	if !strings.Contains(body, want) {
		t.Errorf("metrics missing %s", want)
	}
}

func TestMiddlewareUnmatched(t *testing.T) {
	handler := metrics.Middleware(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/nowhere", nil))

	body := scrape(t)
	want := `jobboard_http_requests_total{method="GET",route="unmatched",status="404"}`
	if !strings.Contains(body, want) {
		t.Errorf("metrics missing %s", want)
	}
}

func TestWorkflowCounters(t *testing.T) {
	metrics.ObserveApplication("submit", "created")
	metrics.ObserveOrphan("job_not_found")

	body := scrape(t)
	for _, want := range []string{
		`jobboard_application_operations_total{operation="submit",outcome="created"}`,
		`jobboard_resume_orphans_total{reason="job_not_found"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
