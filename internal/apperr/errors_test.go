package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "direct", err: NotFound("list not found"), want: KindNotFound},
		{name: "wrapped once", err: fmt.Errorf("load list: %w", Forbidden("no access")), want: KindForbidden},
		{name: "wrapped twice", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", Conflict("dup"))), want: KindConflict},
		{name: "internal wraps typed cause", err: Internal(InvalidInput("bad"), "provisioning failed"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Format(t *testing.T) {
	err := Conflict("list name already in use").With("name", "Groceries").With("owner_id", "u1")
	assert.Equal(t, "conflict: list name already in use (name=Groceries, owner_id=u1)", err.Error())

	cause := errors.New("connection reset")
	wrapped := Internal(cause, "create list")
	assert.Equal(t, "internal: create list: connection reset", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "list not found", PublicMessage(fmt.Errorf("x: %w", NotFound("list not found"))))
	assert.Equal(t, "internal error", PublicMessage(Internal(errors.New("pq: secret detail"), "query")))
	assert.Equal(t, "internal error", PublicMessage(errors.New("raw")))
}

func TestAs(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)

	e, ok := As(fmt.Errorf("wrap: %w", InvalidInput("bad id %q", "x")))
	require.True(t, ok)
	assert.Equal(t, `bad id "x"`, e.Message)
}

func TestConflictState(t *testing.T) {
	err := ConflictState("list %s is not empty", "x")
	assert.Equal(t, KindConflict, err.Kind)
	assert.True(t, err.Precondition)
	assert.False(t, Conflict("dup").Precondition)
}
