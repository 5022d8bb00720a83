// Package observe provides the bot's observability primitives: OpenTelemetry
// metric instruments and the Prometheus exporter bridge that serves them via
// /metrics.
//
// A package-level default [Metrics] instance is not provided on purpose;
// tests construct their own via [NewMetrics] with an isolated MeterProvider.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all bot metrics.
const meterName = "github.com/ultraxas/musicbot"

// Status attribute values recorded on request counters.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
)

// Metrics holds all metric instruments. The underlying OTel types handle
// their own synchronisation, so a single Metrics value is shared freely.
type Metrics struct {
	// SearchDuration tracks the full search orchestration latency,
	// including metadata refinement.
	SearchDuration metric.Float64Histogram

	// DownloadDuration tracks the fetch-and-deliver cycle latency.
	DownloadDuration metric.Float64Histogram

	// Searches counts search requests. Attribute: status (ok|empty|error).
	Searches metric.Int64Counter

	// Downloads counts download requests. Attribute: status (ok|error).
	Downloads metric.Int64Counter

	// Callbacks counts inline-button callbacks. Attributes: action
	// (page|stop|download|invalid), status (ok|rejected).
	Callbacks metric.Int64Counter

	// ActiveSessions tracks the number of chats with a live result list.
	ActiveSessions metric.Int64UpDownCounter
}

// latencyBuckets covers both quick scrape searches and multi-minute
// downloads (seconds).
var latencyBuckets = []float64{
	0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300,
}

// NewMetrics creates a fully initialised [Metrics] using the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	met := &Metrics{}
	var err error

	if met.SearchDuration, err = m.Float64Histogram("musicbot.search.duration",
		metric.WithDescription("Latency of one search orchestration."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DownloadDuration, err = m.Float64Histogram("musicbot.download.duration",
		metric.WithDescription("Latency of one fetch-and-deliver cycle."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Searches, err = m.Int64Counter("musicbot.searches",
		metric.WithDescription("Search requests by outcome."),
	); err != nil {
		return nil, err
	}
	if met.Downloads, err = m.Int64Counter("musicbot.downloads",
		metric.WithDescription("Download requests by outcome."),
	); err != nil {
		return nil, err
	}
	if met.Callbacks, err = m.Int64Counter("musicbot.callbacks",
		metric.WithDescription("Inline-button callbacks by action and outcome."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("musicbot.sessions.active",
		metric.WithDescription("Chats with an active search session."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordSearch records one search outcome with its duration.
func (m *Metrics) RecordSearch(ctx context.Context, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.Searches.Add(ctx, 1, attrs)
	m.SearchDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordDownload records one download outcome with its duration.
func (m *Metrics) RecordDownload(ctx context.Context, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.Downloads.Add(ctx, 1, attrs)
	m.DownloadDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordCallback records one callback dispatch.
func (m *Metrics) RecordCallback(ctx context.Context, action, status string) {
	if m == nil {
		return
	}
	m.Callbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

// SessionOpened adjusts the active-session gauge up.
func (m *Metrics) SessionOpened(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, 1)
}

// SessionClosed adjusts the active-session gauge down.
func (m *Metrics) SessionClosed(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, -1)
}
