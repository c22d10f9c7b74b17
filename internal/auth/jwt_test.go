package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraconstructs/tasklists/internal/db/models"
)

const testUserID = "0192a000-0000-7000-8000-0000000000aa"

func TestSignerVerifierRoundTrip(t *testing.T) {
	signer, err := NewSigner("s3cret", "tasklists", time.Hour)
	require.NoError(t, err)
	verifier, err := NewVerifier("s3cret", "tasklists")
	require.NoError(t, err)

	token, err := signer.Mint(Identity{UserID: testUserID, Email: "a@example.com", Role: models.SystemRoleAdmin})
	require.NoError(t, err)

	id, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id.UserID)
	assert.Equal(t, "a@example.com", id.Email)
	assert.True(t, id.IsAdmin())
}

func TestVerifyRejects(t *testing.T) {
	verifier, err := NewVerifier("s3cret", "tasklists")
	require.NoError(t, err)

	sign := func(claims jwt.MapClaims, secret string) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: sign(jwt.MapClaims{"sub": testUserID, "iss": "tasklists", "exp": exp}, "other")},
		{name: "wrong issuer", token: sign(jwt.MapClaims{"sub": testUserID, "iss": "elsewhere", "exp": exp}, "s3cret")},
		{name: "expired", token: sign(jwt.MapClaims{"sub": testUserID, "iss": "tasklists", "exp": time.Now().Add(-time.Hour).Unix()}, "s3cret")},
		{name: "no expiry", token: sign(jwt.MapClaims{"sub": testUserID, "iss": "tasklists"}, "s3cret")},
		{name: "missing subject", token: sign(jwt.MapClaims{"iss": "tasklists", "exp": exp}, "s3cret")},
		{name: "subject not a uuid", token: sign(jwt.MapClaims{"sub": "alice", "iss": "tasklists", "exp": exp}, "s3cret")},
		{name: "unknown role", token: sign(jwt.MapClaims{"sub": testUserID, "iss": "tasklists", "exp": exp, "role": "root"}, "s3cret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyDefaultsRole(t *testing.T) {
	verifier, err := NewVerifier("s3cret", "tasklists")
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUserID, "iss": "tasklists", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	id, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.SystemRoleUser, id.Role)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = BearerToken("bearer  xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetIdentity(context.Background(), Identity{UserID: testUserID})
	id, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, testUserID, id.UserID)
}
