package otel

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		kind, arg string
		want      string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		{"traceidratio", "junk", "AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
		{"parentbased_traceidratio", "0.25", "ParentBased{root:TraceIDRatioBased{0.25}"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, sampler(tt.kind, tt.arg).Description(), tt.want)
		})
	}
}

func TestInitDisabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInitUnsupportedProtocol(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "unsupported OTLP protocol")
}
