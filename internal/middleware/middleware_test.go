package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shelter-services/internal/platform/logger"
)

func TestRecover_Returns500AndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Format: logger.FormatJSON, Output: &buf})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Recover(log))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Fatalf("expected panic in logs, got %q", buf.String())
	}
}

func TestRequestIDHeader_EchoesID(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestIDHeader)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "abc-123")
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(chimw.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestAccessLog_RecordsRouteAndStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Format: logger.FormatJSON, Output: &buf})

	r := chi.NewRouter()
	r.Use(AccessLog(log))
	r.Get("/zivotinje/{id}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "animal 1 not found", http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zivotinje/1", nil))

	out := buf.String()
	if !strings.Contains(out, `"route":"/zivotinje/{id}"`) || !strings.Contains(out, `"status":404`) {
		t.Fatalf("unexpected access log %q", out)
	}
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORS(nil))
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.test")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS, got %q", got)
	}
}
