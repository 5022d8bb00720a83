package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func get(t *testing.T, h http.Handler, path string) (*http.Response, result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body result
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil && path != "/metrics" {
		t.Fatalf("decode %s body: %v", path, err)
	}
	return rec.Result(), body
}

func TestHealthzAlwaysOK(t *testing.T) {
	t.Parallel()

	s := NewServer(":0")
	resp, body := get(t, s.Handler(), "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if body.Status != "ok" {
		t.Errorf("body status = %q, want ok", body.Status)
	}
}

func TestReadyzAllPassing(t *testing.T) {
	t.Parallel()

	s := NewServer(":0",
		Check{Name: "telegram", Probe: func(context.Context) error { return nil }},
		Check{Name: "disk", Probe: func(context.Context) error { return nil }},
	)
	resp, body := get(t, s.Handler(), "/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if body.Checks["telegram"] != "ok" || body.Checks["disk"] != "ok" {
		t.Errorf("checks = %v", body.Checks)
	}
}

func TestReadyzFailingCheck(t *testing.T) {
	t.Parallel()

	s := NewServer(":0",
		Check{Name: "telegram", Probe: func(context.Context) error { return errors.New("not connected") }},
	)
	resp, body := get(t, s.Handler(), "/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	if body.Status != "fail" {
		t.Errorf("body status = %q, want fail", body.Status)
	}
	if !strings.Contains(body.Checks["telegram"], "not connected") {
		t.Errorf("telegram check = %q", body.Checks["telegram"])
	}
}

func TestMetricsEndpointRegistered(t *testing.T) {
	t.Parallel()

	s := NewServer(":0")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", rec.Code)
	}
}
