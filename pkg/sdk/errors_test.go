package sdk

import (
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConnect_UsesKindHeader(t *testing.T) {
	cerr := connect.NewError(connect.CodeFailedPrecondition, errors.New("list still has tasks"))
	cerr.Meta().Set(ErrorKindHeader, string(KindConflict))

	err := fromConnect(cerr)

	var sdkErr *Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, KindConflict, sdkErr.Kind)
	assert.Equal(t, connect.CodeFailedPrecondition, sdkErr.Code)
	assert.Equal(t, "list still has tasks", sdkErr.Message)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestFromConnect_FallsBackToCode(t *testing.T) {
	tests := []struct {
		code connect.Code
		want Kind
	}{
		{connect.CodeNotFound, KindNotFound},
		{connect.CodePermissionDenied, KindForbidden},
		{connect.CodeAlreadyExists, KindConflict},
		{connect.CodeFailedPrecondition, KindConflict},
		{connect.CodeInvalidArgument, KindInvalidInput},
		{connect.CodeUnauthenticated, KindUnauthenticated},
		{connect.CodeUnavailable, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := fromConnect(connect.NewError(tt.code, errors.New("boom")))
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestFromConnect_LeavesOtherErrors(t *testing.T) {
	plain := errors.New("dial tcp: refused")
	assert.Same(t, plain, fromConnect(plain))
	assert.Equal(t, Kind(""), KindOf(plain))
}

func TestCredentials_IsExpired(t *testing.T) {
	assert.False(t, (&Credentials{AccessToken: "t"}).IsExpired())
	assert.False(t, (&Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(time.Minute)}).IsExpired())
	assert.True(t, (&Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(-time.Minute)}).IsExpired())
}
