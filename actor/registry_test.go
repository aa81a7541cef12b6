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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand-engine/stagehand/appearance"
	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/eventstream"
)

func makeActor(t *testing.T, id string, a appearance.Appearance) *Actor {
	t.Helper()
	actor, err := New(id, a)
	require.NoError(t, err)
	return actor
}

func TestRegistry(t *testing.T) {
	t.Run("With Register and Get", func(t *testing.T) {
		registry := NewRegistry(nil)
		alice := makeActor(t, "alice", appearance.Character{})

		assert.True(t, registry.Register(alice))
		got, err := registry.Get("alice")
		require.NoError(t, err)
		assert.Same(t, alice, got)
		assert.True(t, registry.Exists("alice"))
		assert.Equal(t, 1, registry.Len())
	})
	t.Run("With a nil actor", func(t *testing.T) {
		registry := NewRegistry(nil)
		assert.False(t, registry.Register(nil))
	})
	t.Run("With a duplicate id", func(t *testing.T) {
		registry := NewRegistry(nil)
		assert.True(t, registry.Register(makeActor(t, "alice", appearance.Character{})))
		assert.False(t, registry.Register(makeActor(t, "alice", appearance.Character{})))
		assert.Equal(t, 1, registry.Len())
	})
	t.Run("With Get on a missing id", func(t *testing.T) {
		registry := NewRegistry(nil)
		got, err := registry.Get("ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrNotFound)
		assert.Nil(t, got)

		got, ok := registry.TryGet("ghost")
		assert.False(t, ok)
		assert.Nil(t, got)
	})
	t.Run("With kind-indexed views", func(t *testing.T) {
		registry := NewRegistry(nil)
		registry.Register(makeActor(t, "alice", appearance.Character{}))
		registry.Register(makeActor(t, "bob", appearance.Character{}))
		registry.Register(makeActor(t, "bg1", appearance.Background{Location: "classroom"}))
		registry.Register(makeActor(t, "fx1", appearance.Generic{AppearanceID: "sparkle"}))

		assert.Len(t, registry.OfKind(CharacterKind), 2)
		assert.Len(t, registry.OfKind(BackgroundKind), 1)
		assert.Len(t, registry.OfKind(GenericKind), 1)
		assert.Len(t, registry.All(), 4)
		assert.ElementsMatch(t, []string{"alice", "bob", "bg1", "fx1"}, registry.IDs())
	})
	t.Run("With Unregister removing everywhere", func(t *testing.T) {
		registry := NewRegistry(nil)
		registry.Register(makeActor(t, "alice", appearance.Character{}))

		assert.True(t, registry.Unregister("alice"))
		assert.False(t, registry.Exists("alice"))
		assert.Empty(t, registry.OfKind(CharacterKind))
		assert.False(t, registry.Unregister("alice"))
		require.NoError(t, registry.Validate())
	})
	t.Run("With Clear publishing one event per id", func(t *testing.T) {
		stream := eventstream.New()
		defer stream.Close()
		sub := stream.AddSubscriber()
		stream.Subscribe(sub, TopicActorUnregistered)

		registry := NewRegistry(stream)
		registry.Register(makeActor(t, "alice", appearance.Character{}))
		registry.Register(makeActor(t, "bg1", appearance.Background{Location: "classroom"}))
		registry.Clear()

		assert.Zero(t, registry.Len())
		ids := make([]string, 0, 2)
		for message := range sub.Iterator() {
			ids = append(ids, message.Payload().(UnregisteredEvent).ActorID)
		}
		assert.ElementsMatch(t, []string{"alice", "bg1"}, ids)
	})
	t.Run("With concurrent registration of the same id", func(t *testing.T) {
		registry := NewRegistry(nil)

		const contenders = 16
		var wg sync.WaitGroup
		results := make([]bool, contenders)
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = registry.Register(makeActor(t, "alice", appearance.Character{}))
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, ok := range results {
			if ok {
				wins++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, registry.Len())
		require.NoError(t, registry.Validate())
	})
}
