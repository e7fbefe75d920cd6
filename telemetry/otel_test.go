package telemetry

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-tools/bcproxy/conf"
)

func TestInitTracerDisabled(t *testing.T) {
	logger, hook := test.NewNullLogger()
	shut, err := InitTracer(context.Background(), &conf.TracingConfig{}, "test", logger)
	require.NoError(t, err)
	assert.NoError(t, shut.Shutdown(context.Background()))
	assert.Empty(t, hook.AllEntries())
}

func TestInitTracerEnabled(t *testing.T) {
	logger, hook := test.NewNullLogger()
	config := &conf.TracingConfig{
		Enabled:     true,
		Endpoint:    "http://127.0.0.1:4318/v1/traces",
		ServiceName: "bcproxy-test",
	}
	shut, err := InitTracer(context.Background(), config, "test", logger)
	require.NoError(t, err)
	require.NotNil(t, shut)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "http://127.0.0.1:4318/v1/traces", hook.LastEntry().Data["endpoint"])
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions("http://collector:4318/v1/traces"), 3)
	assert.Len(t, exporterOptions("https://collector/v1/traces"), 2)
	assert.Len(t, exporterOptions("collector:4318"), 3)
}
