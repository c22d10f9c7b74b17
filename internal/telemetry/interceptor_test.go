package telemetry

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func newTestMetrics(t *testing.T) *RPCMetrics {
	t.Helper()
	m, err := NewRPCMetricsWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func TestNewRPCMetrics_GlobalProvider(t *testing.T) {
	m, err := NewRPCMetrics()
	require.NoError(t, err)
	assert.NotNil(t, m.RequestCounter)
	assert.NotNil(t, m.RequestDuration)
	assert.NotNil(t, m.ErrorCounter)
	assert.NotNil(t, m.InFlight)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		m.CallStarted(ctx, "/p")
		m.RecordCall(ctx, "/p", CodeOK, 1.5)
		m.RecordCall(ctx, "/p", connect.CodeNotFound.String(), 0.2)
		m.CallFinished(ctx, "/p")
	})
}

func TestInterceptor_PassesThrough(t *testing.T) {
	interceptor := NewInterceptor(newTestMetrics(t))

	called := false
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		called = true
		assert.NotNil(t, SpanFromContext(ctx))
		return connect.NewResponse(&struct{}{}), nil
	})

	resp, err := interceptor(next)(context.Background(), connect.NewRequest(&struct{}{}))
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.True(t, called)
}

func TestInterceptor_ReturnsHandlerError(t *testing.T) {
	interceptor := NewInterceptor(newTestMetrics(t))

	want := connect.NewError(connect.CodePermissionDenied, errors.New("no access"))
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, want
	})

	_, err := interceptor(next)(context.Background(), connect.NewRequest(&struct{}{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
	assert.Same(t, want, err)
}
