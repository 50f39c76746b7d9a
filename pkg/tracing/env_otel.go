//go:build otel

// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"sigs.k8s.io/release-utils/version"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
)

const (
	// defaultOTLPEndpoint receives spans when no OTEL_EXPORTER_OTLP_*
	// endpoint is configured, e.g. a local Jaeger.
	defaultOTLPEndpoint = "http://localhost:4318"
	defaultServiceName  = "cachekey"

	// mixVersionKey holds fast.MixVersion on the resource.
	mixVersionKey = attribute.Key("cachekey.mix_version")
)

// InitFromEnv installs an OTLP/HTTP tracer for cache-key runs.
// OTEL_TRACES_EXPORTER=none leaves the noop tracer in place.
func InitFromEnv() error {
	if os.Getenv("OTEL_TRACES_EXPORTER") == "none" {
		return nil
	}

	exp, err := otlptracehttp.New(context.Background(), exporterOptions()...)
	if err != nil {
		return fmt.Errorf("create OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(cacheKeyResource(serviceName())),
	)
	otelTracerProvider = tp
	otel.SetTracerProvider(tp)

	SetTracer(&otelTracer{tracer: tp.Tracer(instrumentationName)})
	return nil
}

func serviceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return defaultServiceName
}

// exporterOptions falls back to defaultOTLPEndpoint unless one of the
// standard endpoint variables is set.
func exporterOptions() []otlptracehttp.Option {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" || os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != "" {
		return nil
	}
	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(defaultOTLPEndpoint)}
}

// cacheKeyResource describes the process emitting spans: the binary version
// and the multiply-mix revision its MM keys are computed with.
func cacheKeyResource(service string) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(service),
		mixVersionKey.String(fast.MixVersion),
	}
	if v := version.GetVersionInfo().GitVersion; v != "" {
		attrs = append(attrs, semconv.ServiceVersion(v))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

var otelTracerProvider *sdktrace.TracerProvider

// Shutdown exports batched spans and closes the provider.
func Shutdown(ctx context.Context) error {
	if otelTracerProvider == nil {
		return nil
	}
	tp := otelTracerProvider
	otelTracerProvider = nil
	return tp.Shutdown(ctx)
}

type otelTracer struct {
	tracer trace.Tracer
}

func (t *otelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toKeyValue(key, value))
}

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) End() {
	s.span.End()
}

// toKeyValue maps span attribute values onto OpenTelemetry types. Digests
// and 64-bit values are recorded as hex strings.
func toKeyValue(key string, value any) attribute.KeyValue {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case int64:
		return k.Int64(v)
	case uint64:
		return k.String(fmt.Sprintf("%#016x", v))
	case float64:
		return k.Float64(v)
	case []string:
		return k.StringSlice(v)
	case digests.Digest:
		return k.String(v.String())
	case nil:
		return k.String("")
	default:
		return k.String(fmt.Sprint(v))
	}
}
