package server

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/telemetry"
)

// ErrorKindHeader carries the apperr kind alongside the Connect code so
// clients can recover it.
const ErrorKindHeader = "Error-Kind"

// codeFor maps an error kind to its Connect code.
func codeFor(err error) connect.Code {
	e, ok := apperr.As(err)
	if !ok {
		return connect.CodeInternal
	}
	switch e.Kind {
	case apperr.KindNotFound:
		return connect.CodeNotFound
	case apperr.KindForbidden:
		return connect.CodePermissionDenied
	case apperr.KindConflict:
		if e.Precondition {
			return connect.CodeFailedPrecondition
		}
		return connect.CodeAlreadyExists
	case apperr.KindInvalidInput:
		return connect.CodeInvalidArgument
	default:
		return connect.CodeInternal
	}
}

// toConnectError translates a core error at the transport boundary.
// Internal errors are logged and reach the caller as a generic message.
func (h *ListServiceHandler) toConnectError(ctx context.Context, procedure string, err error) error {
	kind := apperr.KindOf(err)
	telemetry.SpanFromContext(ctx).SetAttributes(attribute.String(telemetry.AttrErrorKind, string(kind)))
	if kind == apperr.KindInternal {
		fields := logrus.Fields{"procedure": procedure}
		if id, ok := auth.IdentityFromContext(ctx); ok {
			fields["user_id"] = id.UserID
		}
		h.logger.WithFields(fields).WithError(err).Error("internal error")
	}

	cerr := connect.NewError(codeFor(err), errors.New(apperr.PublicMessage(err)))
	cerr.Meta().Set(ErrorKindHeader, string(kind))
	return cerr
}
