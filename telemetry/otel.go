// Package telemetry sets up OpenTelemetry tracing for the proxy.
package telemetry

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/graceful"
)

// noop is returned when tracing is disabled.
var noop = graceful.ShutdownFunc(func(context.Context) error { return nil })

// InitTracer installs the global tracer provider and propagator. The
// returned value flushes and stops the exporter.
func InitTracer(ctx context.Context, config *conf.TracingConfig, version string, log logrus.FieldLogger) (graceful.Shutdownable, error) {
	if !config.Enabled {
		return noop, nil
	}

	client := otlptracehttp.NewClient(exporterOptions(config.Endpoint)...)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "creating OTLP exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.WithField("endpoint", config.Endpoint).Infof("OpenTelemetry initialized for service: %s", config.ServiceName)
	return tp, nil
}

// exporterOptions accepts either a full URL or a bare host:port.
func exporterOptions(raw string) []otlptracehttp.Option {
	endpoint := "localhost:4318"
	path := "/v1/traces"
	insecure := true

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if u, err := url.Parse(raw); err == nil {
			if u.Host != "" {
				endpoint = u.Host
			}
			if u.Path != "" {
				path = u.Path
			}
			insecure = u.Scheme == "http"
		}
	} else if raw != "" {
		endpoint = raw
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithURLPath(path),
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}
