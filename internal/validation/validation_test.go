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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Run("With all errors accumulated", func(t *testing.T) {
		err := New(AllErrors()).
			AddAssertion(false, "first violation").
			AddAssertion(true, "passes").
			AddAssertion(false, "second violation").
			Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first violation")
		assert.Contains(t, err.Error(), "second violation")
	})
	t.Run("With fail fast", func(t *testing.T) {
		err := New(FailFast()).
			AddAssertion(false, "first violation").
			AddAssertion(false, "second violation").
			Validate()
		require.Error(t, err)
		assert.EqualError(t, err, "first violation")
	})
	t.Run("With no violations", func(t *testing.T) {
		err := New().
			AddAssertion(true, "passes").
			AddValidator(NewIdentifierValidator("actor id", "alice")).
			Validate()
		assert.NoError(t, err)
	})
}

func TestIdentifierValidator(t *testing.T) {
	t.Run("With valid identifiers", func(t *testing.T) {
		for _, id := range []string{"alice", "bg1", "a", "Actor_01", "room-2"} {
			assert.NoError(t, NewIdentifierValidator("actor id", id).Validate(), id)
		}
	})
	t.Run("With empty identifier", func(t *testing.T) {
		err := NewIdentifierValidator("actor id", "").Validate()
		require.Error(t, err)
		assert.EqualError(t, err, "actor id is required")
	})
	t.Run("With invalid identifiers", func(t *testing.T) {
		for _, id := range []string{"-alice", "_alice", "ali ce", "ali/ce", "日本"} {
			assert.Error(t, NewIdentifierValidator("actor id", id).Validate(), id)
		}
	})
}
