package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracerDisabled(t *testing.T) {
	tp, err := InitTracer("starwars-api", "", false)
	require.NoError(t, err)

	_, isSDK := tp.(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
	assert.NoError(t, Shutdown(context.Background(), tp))
}

func TestInitTracerEnabled(t *testing.T) {
	tp, err := InitTracer("starwars-api", "http://127.0.0.1:14268/api/traces", true)
	require.NoError(t, err)

	_, isSDK := tp.(*sdktrace.TracerProvider)
	assert.True(t, isSDK)
	assert.NoError(t, Shutdown(context.Background(), tp))
}
