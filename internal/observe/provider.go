package observe

import (
	"context"

	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ProviderConfig configures the OpenTelemetry SDK meter provider.
type ProviderConfig struct {
	// ServiceName is reported in telemetry. Default: "musicbot".
	ServiceName string

	// ServiceVersion is reported in telemetry.
	ServiceVersion string
}

// InitProvider sets up a [sdkmetric.MeterProvider] with a Prometheus exporter
// so metrics can be scraped via the promhttp handler on /metrics, and
// registers it as the global OTel meter provider.
//
// Returns a shutdown function that flushes and closes the exporter; call it
// in a defer from main().
func InitProvider(ctx context.Context, cfg ProviderConfig) (shutdown func(context.Context) error, err error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "musicbot"
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := promexporter.New()
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	return mp.Shutdown, nil
}
