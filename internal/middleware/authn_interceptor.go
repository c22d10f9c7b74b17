// Package middleware holds the HTTP middleware and Connect interceptors
// shared by the API server.
package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"

	"github.com/terraconstructs/tasklists/internal/auth"
)

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

var (
	errMissingToken = errors.New("missing bearer token")
	errBadToken     = errors.New("invalid bearer token")
)

// NewAuthnInterceptor rejects any call without a valid bearer token with
// CodeUnauthenticated, and otherwise attaches the verified identity to the
// context.
func NewAuthnInterceptor(verifier TokenVerifier, logger logrus.FieldLogger) connect.UnaryInterceptorFunc {
	return connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			token, ok := auth.BearerToken(req.Header().Get("Authorization"))
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, errMissingToken)
			}

			id, err := verifier.Verify(token)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"procedure": req.Spec().Procedure,
					"peer":      req.Peer().Addr,
				}).WithError(err).Debug("rejected bearer token")
				return nil, connect.NewError(connect.CodeUnauthenticated, errBadToken)
			}

			return next(auth.SetIdentity(ctx, id), req)
		})
	})
}
