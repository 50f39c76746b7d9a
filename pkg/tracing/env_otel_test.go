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
	"testing"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
)

func TestCacheKeyResource(t *testing.T) {
	res := cacheKeyResource("cachekey-ci")

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	if !ok || name.AsString() != "cachekey-ci" {
		t.Errorf("service.name = %q, %v", name.AsString(), ok)
	}
	mix, ok := res.Set().Value(mixVersionKey)
	if !ok || mix.AsString() != fast.MixVersion {
		t.Errorf("%s = %q, want %q", mixVersionKey, mix.AsString(), fast.MixVersion)
	}
}

func TestServiceName(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	if got := serviceName(); got != defaultServiceName {
		t.Errorf("serviceName() = %q, want %q", got, defaultServiceName)
	}
	t.Setenv("OTEL_SERVICE_NAME", "maven-cache")
	if got := serviceName(); got != "maven-cache" {
		t.Errorf("serviceName() = %q, want %q", got, "maven-cache")
	}
}

func TestExporterOptions(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if got := len(exporterOptions()); got != 1 {
		t.Errorf("len(exporterOptions()) without endpoint = %d, want 1", got)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://collector:4318/v1/traces")
	if got := len(exporterOptions()); got != 0 {
		t.Errorf("len(exporterOptions()) with endpoint = %d, want 0", got)
	}
}

func TestToKeyValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{"string", "XXMM", attribute.StringValue("XXMM")},
		{"bool", true, attribute.BoolValue(true)},
		{"int", 4, attribute.IntValue(4)},
		{"uint64", uint64(0xff), attribute.StringValue("0x00000000000000ff")},
		{"digest", digests.NewUint64Digest("XX", 1), attribute.StringValue("XX:0000000000000001")},
		{"nil", nil, attribute.StringValue("")},
		{"other", 1.5, attribute.Float64Value(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toKeyValue("k", tt.value)
			if kv.Key != "k" || kv.Value.Type() != tt.want.Type() || kv.Value.Emit() != tt.want.Emit() {
				t.Errorf("toKeyValue() = %v, want %v", kv.Value.Emit(), tt.want.Emit())
			}
		})
	}
}
