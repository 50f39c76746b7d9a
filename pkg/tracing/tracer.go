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

// Package tracing wraps hashing runs in spans. The default build uses a noop
// tracer; building with -tags=otel exports spans over OTLP/HTTP, configured
// from the standard OTEL_* environment variables.
package tracing

import (
	"context"
	"sync/atomic"
)

// instrumentationName identifies spans produced by this module.
const instrumentationName = "github.com/gnodet/maven-build-cache-extension"

// Span is one timed operation.
type Span interface {
	SetAttribute(key string, value any)
	// RecordError marks the span as failed.
	RecordError(err error)
	End()
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

type tracerHolder struct{ t Tracer }

var globalTracer atomic.Pointer[tracerHolder]

func init() {
	globalTracer.Store(&tracerHolder{t: NoopTracer{}})
}

// SetTracer replaces the global tracer. nil restores the noop tracer.
func SetTracer(t Tracer) {
	if t == nil {
		t = NoopTracer{}
	}
	globalTracer.Store(&tracerHolder{t: t})
}

// GetTracer returns the global tracer, never nil.
func GetTracer() Tracer {
	return globalTracer.Load().t
}

// Start starts a span on the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return GetTracer().Start(ctx, name)
}

// Enabled reports whether a non-noop tracer is installed.
func Enabled() bool {
	_, noop := GetTracer().(NoopTracer)
	return !noop
}

// Run executes fn inside a span named name carrying attrs. A non-nil error
// from fn is recorded on the span and returned unchanged. With the noop
// tracer, fn is called directly.
func Run(ctx context.Context, name string, attrs map[string]any, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}
	ctx, span := Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
