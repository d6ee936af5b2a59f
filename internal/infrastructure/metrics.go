package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "andinabi"

// Metrics holds the OpenTelemetry meter provider backed by the Prometheus
// exporter, plus the instruments the dashboard records.
type Metrics struct {
	provider *sdkmetric.MeterProvider

	// Handler serves the Prometheus scrape endpoint.
	Handler http.Handler

	requests     metric.Int64Counter
	latency      metric.Float64Histogram
	datasetLoads metric.Int64Counter
}

// NewMetrics wires the OpenTelemetry metric pipeline: a Prometheus
// exporter reading from an SDK meter provider, registered as the global
// provider.
func NewMetrics() (*Metrics, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(meterName)

	m := &Metrics{
		provider: provider,
		Handler:  promhttp.Handler(),
	}

	if m.requests, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Number of HTTP requests served")); err != nil {
		return nil, err
	}
	if m.latency, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.datasetLoads, err = meter.Int64Counter("dataset_loads_total",
		metric.WithDescription("Number of full dataset load and enrich runs")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordDatasetLoad records one load/clean/enrich run of the dataset cache.
func (m *Metrics) RecordDatasetLoad(ctx context.Context) {
	if m == nil {
		return
	}
	m.datasetLoads.Add(ctx, 1)
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
