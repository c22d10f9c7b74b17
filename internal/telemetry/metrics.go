package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every instrument in this package.
const MeterName = "tasklists/rpc"

// RPCMetrics holds metric instruments for the list service procedures.
// Create once at server startup and share between requests.
type RPCMetrics struct {
	RequestCounter  metric.Int64Counter     // Total RPC calls
	RequestDuration metric.Float64Histogram // RPC latency
	ErrorCounter    metric.Int64Counter     // Calls that returned an error code
	InFlight        metric.Int64UpDownCounter
}

// NewRPCMetrics creates the RPC instruments on the global meter provider.
// Without a configured provider the instruments are no-ops.
func NewRPCMetrics() (*RPCMetrics, error) {
	return NewRPCMetricsWithMeter(otel.Meter(MeterName))
}

// NewRPCMetricsWithMeter creates the RPC instruments on meter.
func NewRPCMetricsWithMeter(meter metric.Meter) (*RPCMetrics, error) {
	requestCounter, err := meter.Int64Counter(
		"rpc.server.request.count",
		metric.WithDescription("Total number of RPC calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	// Buckets: 5ms, 10ms, 25ms, 50ms, 100ms, 250ms, 500ms, 1s, 2.5s, 5s
	requestDuration, err := meter.Float64Histogram(
		"rpc.server.duration",
		metric.WithDescription("RPC call duration"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)
	if err != nil {
		return nil, err
	}

	errorCounter, err := meter.Int64Counter(
		"rpc.server.error.count",
		metric.WithDescription("Total number of RPC calls that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(
		"rpc.server.active_requests",
		metric.WithDescription("Number of RPC calls being served"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &RPCMetrics{
		RequestCounter:  requestCounter,
		RequestDuration: requestDuration,
		ErrorCounter:    errorCounter,
		InFlight:        inFlight,
	}, nil
}

// RecordCall records one finished call. code is "ok" or a connect code name.
func (m *RPCMetrics) RecordCall(ctx context.Context, procedure, code string, durationMs float64) {
	attrs := metric.WithAttributes(
		attribute.String(AttrRPCProcedure, procedure),
		attribute.String(AttrRPCCode, code),
	)

	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, durationMs, attrs)
	if code != CodeOK {
		m.ErrorCounter.Add(ctx, 1, attrs)
	}
}

// CallStarted increments the in-flight gauge for procedure.
func (m *RPCMetrics) CallStarted(ctx context.Context, procedure string) {
	m.InFlight.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrRPCProcedure, procedure)))
}

// CallFinished decrements the in-flight gauge for procedure.
func (m *RPCMetrics) CallFinished(ctx context.Context, procedure string) {
	m.InFlight.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrRPCProcedure, procedure)))
}
