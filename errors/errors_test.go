// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	t.Run("With NewErrActorNotFound", func(t *testing.T) {
		err := NewErrActorNotFound("alice")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "actor=(alice)")
	})
	t.Run("With NewErrResourceNotFound", func(t *testing.T) {
		err := NewErrResourceNotFound("char_alice_default")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "resource=(char_alice_default)")
	})
	t.Run("With NewErrActorAlreadyExists", func(t *testing.T) {
		err := NewErrActorAlreadyExists("alice")
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
	t.Run("With NewErrLoadFailure", func(t *testing.T) {
		cause := errors.New("disk on fire")
		err := NewErrLoadFailure("bg_room", cause)
		assert.ErrorIs(t, err, ErrLoadFailure)
		assert.ErrorIs(t, err, cause)
	})
	t.Run("With NewErrInvalidTransition", func(t *testing.T) {
		err := NewErrInvalidTransition("Unloading", "Loaded")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Contains(t, err.Error(), "(Unloading -> Loaded)")
	})
}

func TestIsCancellation(t *testing.T) {
	t.Run("With ErrCancelled", func(t *testing.T) {
		assert.True(t, IsCancellation(NewErrCancelled(context.Canceled)))
	})
	t.Run("With bare context errors", func(t *testing.T) {
		assert.True(t, IsCancellation(context.Canceled))
		assert.True(t, IsCancellation(context.DeadlineExceeded))
		assert.True(t, IsCancellation(fmt.Errorf("wrapped: %w", context.Canceled)))
	})
	t.Run("With true failures", func(t *testing.T) {
		assert.False(t, IsCancellation(ErrLoadFailure))
		assert.False(t, IsCancellation(errors.New("boom")))
		assert.False(t, IsCancellation(nil))
	})
}

func TestFallbackError(t *testing.T) {
	t.Run("With aggregated causes", func(t *testing.T) {
		first := errors.New("missing on disk")
		second := context.Canceled
		err := NewFallbackError([]string{"char_alice_happy_standing_02", "char_alice_default"}, []error{first, second})

		assert.ErrorIs(t, err, ErrLoadFailure)
		assert.ErrorIs(t, err, first)
		assert.ErrorIs(t, err, second)
		assert.Equal(t, []string{"char_alice_happy_standing_02", "char_alice_default"}, err.Keys())
		assert.Contains(t, err.Error(), "fallback chain exhausted")
		assert.Contains(t, err.Error(), "char_alice_default")
	})
}

func TestPanicError(t *testing.T) {
	cause := errors.New("nil provider")
	err := NewPanicError(cause)
	assert.EqualError(t, err, "panic: nil provider")
	assert.ErrorIs(t, err, cause)
}
