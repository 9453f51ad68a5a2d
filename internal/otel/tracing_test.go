package otel

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	log, hook := logtest.NewNullLogger()

	shutdown, err := Init(context.Background(), log)

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "tracing_configured", hook.LastEntry().Message)
	assert.Equal(t, false, hook.LastEntry().Data["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	log, hook := logtest.NewNullLogger()

	shutdown, err := Init(context.Background(), log)

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, "tracing_init_failed", hook.LastEntry().Message)
}

func TestGetSampler(t *testing.T) {
	tests := map[string]string{
		"always_on":                "AlwaysOnSampler",
		"always_off":               "AlwaysOffSampler",
		"traceidratio":             "TraceIDRatioBased{0.25}",
		"parentbased_traceidratio": "ParentBased{root:TraceIDRatioBased{0.25}",
		"":                         "ParentBased{root:AlwaysOnSampler",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER", name)
			t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
			assert.Contains(t, getSampler().Description(), want)
		})
	}
}

func TestSamplerRatio_Invalid(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "2")
	assert.Equal(t, 1.0, samplerRatio())
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "nope")
	assert.Equal(t, 1.0, samplerRatio())
}
