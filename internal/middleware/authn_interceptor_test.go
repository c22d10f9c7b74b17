package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraconstructs/tasklists/internal/auth"
)

type stubVerifier struct {
	id  auth.Identity
	err error
}

func (s stubVerifier) Verify(string) (auth.Identity, error) { return s.id, s.err }

func TestAuthnInterceptor(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	want := auth.Identity{UserID: "0192a000-0000-7000-8000-000000000001", Email: "a@example.com"}

	var seen auth.Identity
	next := connect.UnaryFunc(func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		id, ok := auth.IdentityFromContext(ctx)
		require.True(t, ok)
		seen = id
		return connect.NewResponse(&struct{}{}), nil
	})

	tests := []struct {
		name     string
		header   string
		verifier stubVerifier
		wantCode connect.Code
	}{
		{name: "valid token", header: "Bearer good", verifier: stubVerifier{id: want}},
		{name: "missing header", verifier: stubVerifier{id: want}, wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic abc", verifier: stubVerifier{id: want}, wantCode: connect.CodeUnauthenticated},
		{name: "rejected token", header: "Bearer bad", verifier: stubVerifier{err: errors.New("nope")}, wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = auth.Identity{}
			interceptor := NewAuthnInterceptor(tt.verifier, logger)
			req := connect.NewRequest(&struct{}{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := interceptor.WrapUnary(next)(context.Background(), req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				assert.Empty(t, seen.UserID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, seen)
		})
	}
}
