// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := stderrors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: base, want: ""},
		{name: "typed", err: Wrap(Transient, "load profile", base), want: Transient},
		{name: "wrapped by fmt", err: fmt.Errorf("bootstrap: %w", New(Unauthorized, "session rejected")), want: Unauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsWalksNestedKinds(t *testing.T) {
	inner := New(Unauthorized, "token expired")
	outer := Wrap(Transient, "retry exhausted", inner)

	assert.True(t, Is(outer, Transient))
	assert.True(t, Is(outer, Unauthorized))
	assert.False(t, Is(outer, SaveFailed))
	assert.False(t, Is(stderrors.New("x"), Transient))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "busy: save in progress", New(Busy, "save in progress").Error())
	assert.Equal(t, "storage: clear token: denied", Wrap(Storage, "clear token", stderrors.New("denied")).Error())
	assert.True(t, stderrors.Is(Wrap(Storage, "x", stderrors.ErrUnsupported), stderrors.ErrUnsupported))
}
