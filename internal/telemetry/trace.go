// Package telemetry wraps the OpenTelemetry API for the list service:
// RPC metrics, spans around procedures and helpers for service spans.
// Exporters are configured by whoever installs the global providers.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span for a service operation.
//
//	ctx, span := telemetry.StartSpan(ctx, "tasklists/services/provisioning", "provisioning.Provision",
//	    attribute.String(telemetry.AttrUserID, userID),
//	)
//	defer span.End()
func StartSpan(ctx context.Context, tracerName, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// RecordError records err on the span and marks it failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// AddEvent adds a named event to the span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// CodeOK is the code attribute value for calls that succeeded.
const CodeOK = "ok"

// Common attribute keys
const (
	AttrRPCProcedure = "rpc.procedure"
	AttrRPCCode      = "rpc.code"

	AttrUserID    = "user.id"
	AttrListID    = "list.id"
	AttrTaskID    = "task.id"
	AttrErrorKind = "error.kind"

	AttrSagaStep = "saga.step"
)
