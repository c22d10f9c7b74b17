package sdk

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
)

// Kind mirrors the server's error kinds.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInvalidInput Kind = "invalid_input"
	KindInternal     Kind = "internal"
	// KindUnauthenticated is reported when the server rejected the token.
	KindUnauthenticated Kind = "unauthenticated"
)

// ErrorKindHeader is the response metadata key carrying the kind.
const ErrorKindHeader = "Error-Kind"

// Error is a failed call with its kind recovered from the response.
type Error struct {
	Kind    Kind
	Code    connect.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of an error returned by Client, or "" for errors
// that did not come from the server.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func fromConnect(err error) error {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return err
	}

	out := &Error{Code: cerr.Code(), Message: cerr.Message()}
	switch kind := Kind(cerr.Meta().Get(ErrorKindHeader)); {
	case kind != "":
		out.Kind = kind
	case cerr.Code() == connect.CodeUnauthenticated:
		out.Kind = KindUnauthenticated
	default:
		out.Kind = kindForCode(cerr.Code())
	}
	return out
}

func kindForCode(code connect.Code) Kind {
	switch code {
	case connect.CodeNotFound:
		return KindNotFound
	case connect.CodePermissionDenied:
		return KindForbidden
	case connect.CodeAlreadyExists, connect.CodeFailedPrecondition:
		return KindConflict
	case connect.CodeInvalidArgument:
		return KindInvalidInput
	default:
		return KindInternal
	}
}
