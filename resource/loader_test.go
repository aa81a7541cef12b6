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
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockProvider is a scriptable Provider for tests.
type mockProvider struct {
	loads   atomic.Uint64
	unloads atomic.Uint64

	loadFn   func(ctx context.Context, key string) (*Asset, error)
	unloadFn func(key string)
}

func (m *mockProvider) Load(ctx context.Context, key string) (*Asset, error) {
	m.loads.Inc()
	if m.loadFn != nil {
		return m.loadFn(ctx, key)
	}
	return &Asset{Key: key, Value: key}, nil
}

func (m *mockProvider) Unload(key string) {
	m.unloads.Inc()
	if m.unloadFn != nil {
		m.unloadFn(key)
	}
}

func TestNewLoader(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider))
		require.NoError(t, err)
		require.NotNil(t, loader)
		assert.Equal(t, DefaultCacheCapacity, loader.Cache().Capacity())
	})
	t.Run("With nil provider", func(t *testing.T) {
		loader, err := NewLoader(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.Nil(t, loader)
	})
	t.Run("With invalid concurrency", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider), WithConcurrency(0))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.Nil(t, loader)
	})
	t.Run("With invalid eviction policy", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider), WithEvictionPolicy(EvictionPolicy(42)))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
		assert.Nil(t, loader)
	})
	t.Run("With options", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider),
			WithCacheCapacity(8),
			WithEvictionPolicy(LFU),
			WithConcurrency(2),
			WithRetry(1, time.Millisecond, time.Millisecond),
			WithLogger(log.DiscardLogger),
			WithoutFallback())
		require.NoError(t, err)
		assert.Equal(t, 8, loader.Cache().Capacity())
		assert.False(t, loader.fallback)
	})
}

func TestLoad(t *testing.T) {
	t.Run("With a cache miss then a cache hit", func(t *testing.T) {
		provider := new(mockProvider)
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		ctx := context.Background()
		asset, err := loader.Load(ctx, "bg_school_day")
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, "bg_school_day", asset.Key)

		again, err := loader.Load(ctx, "bg_school_day")
		require.NoError(t, err)
		assert.Same(t, asset, again)

		assert.EqualValues(t, 1, provider.loads.Load())
		assert.Equal(t, 2, loader.Cache().Refs("bg_school_day"))

		stats := loader.Stats()
		assert.EqualValues(t, 1, stats.CacheHits)
		assert.EqualValues(t, 1, stats.CacheMisses)
	})
	t.Run("With concurrent requesters sharing one provider call", func(t *testing.T) {
		release := make(chan struct{})
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				<-release
				return &Asset{Key: key}, nil
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		const requesters = 8
		var wg sync.WaitGroup
		results := make([]*Asset, requesters)
		errs := make([]error, requesters)
		for i := 0; i < requesters; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = loader.Load(context.Background(), "char_alice_default")
			}(i)
		}

		// let every requester attach before the provider settles
		assert.Eventually(t, func() bool {
			return loader.Stats().InFlight == 1
		}, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		for i := 0; i < requesters; i++ {
			require.NoError(t, errs[i])
			require.NotNil(t, results[i])
			assert.Same(t, results[0], results[i])
		}
		assert.EqualValues(t, 1, provider.loads.Load())
		// every requester holds its own reference on the single entry
		assert.Equal(t, requesters, loader.Cache().Refs("char_alice_default"))
	})
	t.Run("With a missing resource no retry happens", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				return nil, gerrors.NewErrResourceNotFound(key)
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.Load(context.Background(), "bg_missing")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrLoadFailure)
		assert.ErrorIs(t, err, gerrors.ErrNotFound)
		assert.EqualValues(t, 1, provider.loads.Load())
		assert.False(t, loader.Cache().Contains("bg_missing"))
	})
	t.Run("With a nil asset treated as not found", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, _ string) (*Asset, error) {
				return nil, nil
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.Load(context.Background(), "bg_nil")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrNotFound)
		assert.EqualValues(t, 1, provider.loads.Load())
	})
	t.Run("With transient errors retried", func(t *testing.T) {
		var attempts atomic.Uint64
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				if attempts.Inc() < 3 {
					return nil, errors.New("transient I/O error")
				}
				return &Asset{Key: key}, nil
			},
		}
		loader, err := NewLoader(provider,
			WithRetry(3, time.Millisecond, 2*time.Millisecond),
			WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.Load(context.Background(), "bg_flaky")
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.EqualValues(t, 3, attempts.Load())
		assert.Zero(t, loader.Stats().Failures)
	})
	t.Run("With retries exhausted", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, _ string) (*Asset, error) {
				return nil, errors.New("transient I/O error")
			},
		}
		loader, err := NewLoader(provider,
			WithRetry(2, time.Millisecond, 2*time.Millisecond),
			WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.Load(context.Background(), "bg_broken")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrLoadFailure)
		assert.EqualValues(t, 2, provider.loads.Load())
		assert.EqualValues(t, 1, loader.Stats().Failures)
	})
	t.Run("With a panicking provider", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, _ string) (*Asset, error) {
				panic("corrupted archive")
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.Load(context.Background(), "bg_corrupted")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrLoadFailure)
		var panicErr *gerrors.PanicError
		assert.ErrorAs(t, err, &panicErr)
	})
	t.Run("With a cancelled context before the call", func(t *testing.T) {
		provider := new(mockProvider)
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		asset, err := loader.Load(ctx, "bg_school_day")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.True(t, gerrors.IsCancellation(err))
		assert.Zero(t, provider.loads.Load())
	})
	t.Run("With the last waiter cancelling the in-flight load", func(t *testing.T) {
		settled := make(chan struct{})
		provider := &mockProvider{
			loadFn: func(ctx context.Context, _ string) (*Asset, error) {
				defer close(settled)
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			assert.Eventually(t, func() bool {
				return loader.Stats().InFlight == 1
			}, time.Second, time.Millisecond)
			cancel()
		}()

		asset, err := loader.Load(ctx, "bg_slow")
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.True(t, gerrors.IsCancellation(err))

		<-settled
		assert.Eventually(t, func() bool {
			return loader.Stats().Cancellations == 1
		}, time.Second, time.Millisecond)
		assert.Zero(t, loader.Stats().Failures)
		assert.False(t, loader.Cache().Contains("bg_slow"))
	})
	t.Run("With one waiter leaving the load keeps running for the rest", func(t *testing.T) {
		release := make(chan struct{})
		provider := &mockProvider{
			loadFn: func(ctx context.Context, key string) (*Asset, error) {
				select {
				case <-release:
					return &Asset{Key: key}, nil
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		cancellable, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		var patientAsset *Asset
		var patientErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			patientAsset, patientErr = loader.Load(context.Background(), "bg_shared")
		}()

		assert.Eventually(t, func() bool {
			return loader.Stats().InFlight == 1
		}, time.Second, time.Millisecond)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, impatientErr := loader.Load(cancellable, "bg_shared")
			assert.True(t, gerrors.IsCancellation(impatientErr))
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		require.NoError(t, patientErr)
		require.NotNil(t, patientAsset)
		assert.Equal(t, 1, loader.Cache().Refs("bg_shared"))
	})
}

func TestLoadChain(t *testing.T) {
	t.Run("With the canonical key succeeding", func(t *testing.T) {
		provider := new(mockProvider)
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.LoadChain(context.Background(), []string{
			"char_alice_happy_standing_02",
			"char_alice_happy_standing",
			"char_alice_default",
		})
		require.NoError(t, err)
		assert.Equal(t, "char_alice_happy_standing_02", asset.Key)
		assert.EqualValues(t, 1, provider.loads.Load())
	})
	t.Run("With a fallback key succeeding", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				if key != "char_alice_default" {
					return nil, gerrors.NewErrResourceNotFound(key)
				}
				return &Asset{Key: key}, nil
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.LoadChain(context.Background(), []string{
			"char_alice_happy_standing",
			"char_alice_default",
		})
		require.NoError(t, err)
		assert.Equal(t, "char_alice_default", asset.Key)
		assert.EqualValues(t, 2, provider.loads.Load())
	})
	t.Run("With every key failing", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				return nil, gerrors.NewErrResourceNotFound(key)
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		chain := []string{"char_alice_happy_standing", "char_alice_default"}
		asset, err := loader.LoadChain(context.Background(), chain)
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrLoadFailure)

		var fallbackErr *gerrors.FallbackError
		require.ErrorAs(t, err, &fallbackErr)
		assert.Equal(t, chain, fallbackErr.Keys())
	})
	t.Run("With fallback disabled only the first key is tried", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				return nil, gerrors.NewErrResourceNotFound(key)
			},
		}
		loader, err := NewLoader(provider, WithoutFallback(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		_, err = loader.LoadChain(context.Background(), []string{"a", "b", "c"})
		require.Error(t, err)
		assert.EqualValues(t, 1, provider.loads.Load())
	})
	t.Run("With an empty chain", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		asset, err := loader.LoadChain(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.ErrorIs(t, err, gerrors.ErrValidationFailure)
	})
	t.Run("With a cancellation short-circuiting the chain", func(t *testing.T) {
		provider := &mockProvider{
			loadFn: func(ctx context.Context, _ string) (*Asset, error) {
				return nil, ctx.Err()
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		asset, err := loader.LoadChain(ctx, []string{"a", "b", "c"})
		require.Error(t, err)
		assert.Nil(t, asset)
		assert.True(t, gerrors.IsCancellation(err))
		assert.Zero(t, provider.loads.Load())
	})
}

func TestUnload(t *testing.T) {
	t.Run("With a cached key", func(t *testing.T) {
		provider := new(mockProvider)
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		_, err = loader.Load(context.Background(), "bg_school_day")
		require.NoError(t, err)
		loader.Release("bg_school_day")

		assert.True(t, loader.Unload("bg_school_day"))
		assert.False(t, loader.Cache().Contains("bg_school_day"))
		assert.EqualValues(t, 1, provider.unloads.Load())
	})
	t.Run("With a load in flight the unload is skipped", func(t *testing.T) {
		release := make(chan struct{})
		provider := &mockProvider{
			loadFn: func(_ context.Context, key string) (*Asset, error) {
				<-release
				return &Asset{Key: key}, nil
			},
		}
		loader, err := NewLoader(provider, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := loader.Load(context.Background(), "bg_slow")
			assert.NoError(t, err)
		}()

		assert.Eventually(t, func() bool {
			return loader.Stats().InFlight == 1
		}, time.Second, time.Millisecond)

		assert.False(t, loader.Unload("bg_slow"))
		assert.Zero(t, provider.unloads.Load())

		close(release)
		<-done
	})
	t.Run("With an unknown key", func(t *testing.T) {
		loader, err := NewLoader(new(mockProvider), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.False(t, loader.Unload("unknown"))
	})
}
