package telemetry

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "tasklists/rpc"

// NewInterceptor returns a Connect interceptor that wraps every handler call
// in a server span and records it in m.
func NewInterceptor(m *RPCMetrics) connect.UnaryInterceptorFunc {
	return connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			procedure := req.Spec().Procedure
			ctx, span := StartSpan(ctx, tracerName, procedure, attribute.String(AttrRPCProcedure, procedure))
			defer span.End()

			m.CallStarted(ctx, procedure)
			defer m.CallFinished(ctx, procedure)

			start := time.Now()
			resp, err := next(ctx, req)
			elapsed := float64(time.Since(start).Microseconds()) / 1000

			code := CodeOK
			if err != nil {
				code = connect.CodeOf(err).String()
				RecordError(span, err)
			}
			span.SetAttributes(attribute.String(AttrRPCCode, code))
			m.RecordCall(ctx, procedure, code, elapsed)

			return resp, err
		})
	})
}

// SpanFromContext exposes the active span so handlers can annotate it.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
