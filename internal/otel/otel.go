// Package otel wires the OTLP trace pipeline. Tracing is opt-in: when no
// collector endpoint is configured, Init installs nothing and the returned
// shutdown is a no-op, so callers can always defer it.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shutdown flushes buffered spans and stops the trace provider.
type Shutdown func(context.Context) error

// Init installs a global OTLP/HTTP trace provider when endpoint is set.
func Init(ctx context.Context, service, serviceVersion, endpoint string) (Shutdown, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
			semconv.ServiceVersion(serviceVersion),
		)),
	)
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) error {
		// Flush first so a drained exporter does not mask spans still queued
		// in the batcher.
		if err := provider.ForceFlush(ctx); err != nil {
			return fmt.Errorf("flush traces: %w", err)
		}
		return provider.Shutdown(ctx)
	}, nil
}
