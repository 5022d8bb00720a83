// Package health serves the bot's operational HTTP surface:
//
//   - /healthz — liveness; 200 whenever the process can serve HTTP.
//   - /readyz  — readiness; 200 only when every registered check passes.
//   - /metrics — Prometheus scrape endpoint for the OTel bridge.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Check is a named readiness probe. Probe returns nil when the dependency is
// healthy; it must respect context cancellation.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Server serves the health and metrics endpoints on its own listener.
type Server struct {
	checks []Check
	srv    *http.Server
}

// NewServer creates a Server listening on addr with the given readiness
// checks. Checks run sequentially per /readyz request in the order given.
func NewServer(addr string, checks ...Check) *Server {
	s := &Server{checks: checks}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /readyz", s.readyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown is called. A closed
// listener is reported as nil.
func (s *Server) ListenAndServe() error {
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the underlying mux, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

type result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	res := result{Status: "ok", Checks: make(map[string]string, len(s.checks))}
	status := http.StatusOK

	for _, c := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Probe(ctx)
		cancel()

		if err != nil {
			res.Checks[c.Name] = "fail: " + err.Error()
			res.Status = "fail"
			status = http.StatusServiceUnavailable
		} else {
			res.Checks[c.Name] = "ok"
		}
	}

	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
