// Package opentelemetry sets up the trace exporter of the service.
package opentelemetry

import (
	"context"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/lumber"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
)

const exporterTimeout = 5 * time.Second

// InitTracer registers the global tracer provider exporting spans to the otel collector.
// The returned function flushes and stops the exporter.
func InitTracer(ctx context.Context, cfg *config.Config, logger lumber.Logger) func(context.Context) error {
	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.Tracing.OtelEndpoint),
		otlptracegrpc.WithTimeout(exporterTimeout),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		logger.Errorf("failed to create otel exporter: %v", err)
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(constants.ServiceName),
			semconv.ServiceVersionKey.String(constants.BinaryVersion),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)
	if err != nil {
		logger.Errorf("failed to create otel resource: %v", err)
		res = resource.Default()
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Infof("tracing enabled, exporting to %s", cfg.Tracing.OtelEndpoint)
	return provider.Shutdown
}
