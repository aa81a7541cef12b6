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

package resource

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache(t *testing.T) {
	t.Run("With valid policy", func(t *testing.T) {
		cache, err := NewCache(10, LRU, nil)
		require.NoError(t, err)
		require.NotNil(t, cache)
		assert.Equal(t, 10, cache.Capacity())
	})
	t.Run("With invalid policy", func(t *testing.T) {
		cache, err := NewCache(10, EvictionPolicy(42), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEvictionPolicy)
		assert.Nil(t, cache)
	})
	t.Run("With non-positive capacity", func(t *testing.T) {
		cache, err := NewCache(0, LRU, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultCacheCapacity, cache.Capacity())
	})
}

func TestCache(t *testing.T) {
	t.Run("With Put and Get", func(t *testing.T) {
		cache, err := NewCache(4, LRU, nil)
		require.NoError(t, err)

		asset := &Asset{Key: "bg_school_day"}
		cache.Put("bg_school_day", asset, 1)
		assert.True(t, cache.Contains("bg_school_day"))
		assert.Equal(t, 1, cache.Refs("bg_school_day"))

		got, ok := cache.Get("bg_school_day")
		require.True(t, ok)
		assert.Same(t, asset, got)
		assert.Equal(t, 2, cache.Refs("bg_school_day"))
	})
	t.Run("With Get on a missing key", func(t *testing.T) {
		cache, err := NewCache(4, LRU, nil)
		require.NoError(t, err)

		got, ok := cache.Get("missing")
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Zero(t, cache.Refs("missing"))
	})
	t.Run("With duplicate Put the existing entry wins", func(t *testing.T) {
		cache, err := NewCache(4, LRU, nil)
		require.NoError(t, err)

		first := &Asset{Key: "char_alice_default", Value: "first"}
		second := &Asset{Key: "char_alice_default", Value: "second"}
		cache.Put("char_alice_default", first, 1)
		got := cache.Put("char_alice_default", second, 2)

		assert.Same(t, first, got)
		assert.Equal(t, 1, cache.Len())
		assert.Equal(t, 3, cache.Refs("char_alice_default"))
	})
	t.Run("With Release", func(t *testing.T) {
		cache, err := NewCache(4, LRU, nil)
		require.NoError(t, err)

		cache.Put("bg_menu", &Asset{Key: "bg_menu"}, 2)
		cache.Release("bg_menu")
		assert.Equal(t, 1, cache.Refs("bg_menu"))
		cache.Release("bg_menu")
		assert.Zero(t, cache.Refs("bg_menu"))
		// an unreferenced entry stays cached until capacity pressure
		assert.True(t, cache.Contains("bg_menu"))
		// releasing below zero is a no-op
		cache.Release("bg_menu")
		assert.Zero(t, cache.Refs("bg_menu"))
	})
	t.Run("With Remove", func(t *testing.T) {
		var unloaded []string
		cache, err := NewCache(4, LRU, func(key string, _ *Asset) {
			unloaded = append(unloaded, key)
		})
		require.NoError(t, err)

		cache.Put("bg_menu", &Asset{Key: "bg_menu"}, 1)
		assert.True(t, cache.Remove("bg_menu"))
		assert.False(t, cache.Contains("bg_menu"))
		assert.Equal(t, []string{"bg_menu"}, unloaded)
		assert.False(t, cache.Remove("bg_menu"))
	})
	t.Run("With Keys ordered by recency", func(t *testing.T) {
		cache, err := NewCache(4, LRU, nil)
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 0)
		cache.Put("b", &Asset{Key: "b"}, 0)
		cache.Put("c", &Asset{Key: "c"}, 0)
		_, _ = cache.Get("a")

		assert.Equal(t, []string{"a", "c", "b"}, cache.Keys())
	})
	t.Run("With Clear", func(t *testing.T) {
		var unloaded []string
		cache, err := NewCache(4, LRU, func(key string, _ *Asset) {
			unloaded = append(unloaded, key)
		})
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 1)
		cache.Put("b", &Asset{Key: "b"}, 0)
		cache.Clear()

		assert.Zero(t, cache.Len())
		assert.Len(t, unloaded, 2)
	})
}

func TestCacheEviction(t *testing.T) {
	t.Run("With LRU the least recently used unreferenced entry is evicted", func(t *testing.T) {
		var evicted []string
		cache, err := NewCache(3, LRU, func(key string, _ *Asset) {
			evicted = append(evicted, key)
		})
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 0)
		cache.Put("b", &Asset{Key: "b"}, 0)
		cache.Put("c", &Asset{Key: "c"}, 0)
		// refresh "a" so "b" becomes the oldest
		_, ok := cache.Get("a")
		require.True(t, ok)
		cache.Release("a")

		cache.Put("d", &Asset{Key: "d"}, 0)

		assert.Equal(t, []string{"b"}, evicted)
		assert.Equal(t, 3, cache.Len())
		assert.True(t, cache.Contains("a"))
		assert.True(t, cache.Contains("c"))
		assert.True(t, cache.Contains("d"))
	})
	t.Run("With referenced entries pinned the cache may exceed its bound", func(t *testing.T) {
		var evicted []string
		cache, err := NewCache(2, LRU, func(key string, _ *Asset) {
			evicted = append(evicted, key)
		})
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 1)
		cache.Put("b", &Asset{Key: "b"}, 1)
		cache.Put("c", &Asset{Key: "c"}, 1)

		assert.Empty(t, evicted)
		assert.Equal(t, 3, cache.Len())

		// dropping a reference re-triggers eviction
		cache.Release("a")
		assert.Equal(t, []string{"a"}, evicted)
		assert.Equal(t, 2, cache.Len())
	})
	t.Run("With MRU the most recently used unreferenced entry is evicted", func(t *testing.T) {
		var evicted []string
		cache, err := NewCache(2, MRU, func(key string, _ *Asset) {
			evicted = append(evicted, key)
		})
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 0)
		cache.Put("b", &Asset{Key: "b"}, 0)
		cache.Put("c", &Asset{Key: "c"}, 0)

		assert.Equal(t, []string{"c"}, evicted)
		assert.True(t, cache.Contains("a"))
		assert.True(t, cache.Contains("b"))
	})
	t.Run("With LFU the least frequently used unreferenced entry is evicted", func(t *testing.T) {
		var evicted []string
		cache, err := NewCache(2, LFU, func(key string, _ *Asset) {
			evicted = append(evicted, key)
		})
		require.NoError(t, err)

		cache.Put("a", &Asset{Key: "a"}, 0)
		cache.Put("b", &Asset{Key: "b"}, 0)
		for i := 0; i < 3; i++ {
			_, ok := cache.Get("a")
			require.True(t, ok)
			cache.Release("a")
		}

		cache.Put("c", &Asset{Key: "c"}, 1)

		assert.Equal(t, []string{"b"}, evicted)
		assert.True(t, cache.Contains("a"))
		assert.True(t, cache.Contains("c"))
	})
	t.Run("With every entry referenced no victim exists", func(t *testing.T) {
		cache, err := NewCache(1, LRU, nil)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			key := fmt.Sprintf("k%d", i)
			cache.Put(key, &Asset{Key: key}, 1)
		}
		assert.Equal(t, 5, cache.Len())
	})
}
