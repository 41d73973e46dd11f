package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the process-wide tracer. Without InitTracing it resolves to the
// no-op provider, so instrumented code paths cost nothing when tracing is
// disabled.
var Tracer = otel.Tracer("forensic")

// InitTracing wires an OTLP/gRPC exporter and installs the tracer provider.
// The returned shutdown function flushes pending spans.
func InitTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "forensic"),
		)),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("forensic")

	return provider.Shutdown, nil
}
