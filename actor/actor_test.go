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

package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand-engine/stagehand/appearance"
	gerrors "github.com/stagehand-engine/stagehand/errors"
)

func TestNewActor(t *testing.T) {
	t.Run("With a valid character", func(t *testing.T) {
		actor, err := New("alice", appearance.Character{Expression: appearance.Happy, Pose: appearance.Standing})
		require.NoError(t, err)
		assert.Equal(t, "alice", actor.ID())
		assert.Equal(t, CharacterKind, actor.Kind())
		assert.Equal(t, Unloaded, actor.LoadState())
		assert.Equal(t, Hidden, actor.VisibilityState())
		assert.Equal(t, 1.0, actor.Alpha())
		assert.Equal(t, 1.0, actor.Scale())
		assert.Equal(t, DefaultTint, actor.Tint())
		assert.False(t, actor.Failed())
	})
	t.Run("With kind derived from the appearance family", func(t *testing.T) {
		background, err := New("bg1", appearance.Background{Type: appearance.Scene, Location: "classroom"})
		require.NoError(t, err)
		assert.Equal(t, BackgroundKind, background.Kind())

		generic, err := New("fx1", appearance.Generic{AppearanceID: "sparkle"})
		require.NoError(t, err)
		assert.Equal(t, GenericKind, generic.Kind())
	})
	t.Run("With a nil appearance", func(t *testing.T) {
		actor, err := New("alice", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.Nil(t, actor)
	})
	t.Run("With an invalid id", func(t *testing.T) {
		actor, err := New("-bad id-", appearance.Generic{AppearanceID: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.ErrorIs(t, err, gerrors.ErrInvalidActorID)
		assert.Nil(t, actor)
	})
	t.Run("With an invalid appearance", func(t *testing.T) {
		actor, err := New("alice", appearance.Character{OutfitID: -1})
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.Nil(t, actor)
	})
}

func TestActorTransform(t *testing.T) {
	actor, err := New("alice", appearance.Character{})
	require.NoError(t, err)

	actor.SetPosition(Position{X: 10, Y: -4})
	actor.SetScale(1.5)
	actor.SetRotation(90)
	actor.SetTint(0xFF00FF00)
	actor.SetAlpha(0.5)

	assert.Equal(t, Position{X: 10, Y: -4}, actor.Position())
	assert.Equal(t, 1.5, actor.Scale())
	assert.Equal(t, 90.0, actor.Rotation())
	assert.Equal(t, uint32(0xFF00FF00), actor.Tint())
	assert.Equal(t, 0.5, actor.Alpha())
}

func TestActorSnapshot(t *testing.T) {
	t.Run("With a character round trip", func(t *testing.T) {
		a := appearance.Character{Expression: appearance.Happy, Pose: appearance.Sitting, OutfitID: 2}
		actor, err := New("alice", a)
		require.NoError(t, err)
		actor.SetPosition(Position{X: 3, Y: 7})

		snap := actor.Snapshot()
		assert.Equal(t, "alice", snap.ID)
		assert.Equal(t, "character", snap.Kind)
		assert.Equal(t, 3.0, snap.X)
		assert.False(t, snap.Visible)

		rebuilt, err := snap.Appearance.Appearance()
		require.NoError(t, err)
		assert.True(t, appearance.Equal(a, rebuilt))
	})
	t.Run("With a layered character round trip", func(t *testing.T) {
		a := appearance.LayeredCharacter{
			BasePose:         appearance.Standing,
			ExpressionLayers: []int{1, 3},
			OutfitLayers:     []int{2},
		}
		actor, err := New("bob", a)
		require.NoError(t, err)

		rebuilt, err := actor.Snapshot().Appearance.Appearance()
		require.NoError(t, err)
		assert.True(t, appearance.Equal(a, rebuilt))
	})
	t.Run("With an unknown family", func(t *testing.T) {
		_, err := AppearanceDescriptor{Family: "mystery"}.Appearance()
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
	})
}

func TestActorDebugInfo(t *testing.T) {
	actor, err := New("alice", appearance.Character{Expression: appearance.Happy})
	require.NoError(t, err)

	info := actor.DebugInfo()
	assert.Contains(t, info, "actor=(alice)")
	assert.Contains(t, info, "kind=(character)")
	assert.Contains(t, info, "Unloaded")
}
