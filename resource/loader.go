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
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/internal/syncmap"
	"github.com/stagehand-engine/stagehand/log"
)

const (
	// DefaultConcurrency bounds the number of simultaneous provider loads.
	DefaultConcurrency = 4
	// DefaultRetryAttempts is the number of tries for transient provider errors.
	DefaultRetryAttempts = 3

	defaultRetryInitialDelay = 50 * time.Millisecond
	defaultRetryMaxDelay     = time.Second
)

// Stats is a snapshot of the loader counters. Cancellations are tracked
// separately from failures: an intentionally superseded load is a normal
// outcome, not a fault.
type Stats struct {
	CacheHits     uint64
	CacheMisses   uint64
	Failures      uint64
	Cancellations uint64
	InFlight      int64
	CacheLen      int
	CacheCapacity int
}

// Loader deduplicates and bounds asset loads against a Provider and caches
// the results. All provider errors and panics are classified at this
// boundary; no partial cache entry survives a failed or cancelled load.
type Loader struct {
	provider Provider
	cache    *Cache
	tasks    *syncmap.SyncMap[string, *loadTask]
	sem      *semaphore.Weighted
	retrier  *retry.Retrier
	logger   log.Logger
	fallback bool

	hits          atomic.Uint64
	misses        atomic.Uint64
	failures      atomic.Uint64
	cancellations atomic.Uint64
	inFlight      atomic.Int64
}

// NewLoader creates a Loader on top of the given provider.
func NewLoader(provider Provider, opts ...Option) (*Loader, error) {
	if provider == nil {
		return nil, gerrors.NewErrValidationFailure(errors.New("provider is required"))
	}

	loader := &Loader{
		provider: provider,
		tasks:    syncmap.New[string, *loadTask](),
		logger:   log.DefaultLogger,
		fallback: true,
	}

	cfg := &loaderConfig{
		capacity:    DefaultCacheCapacity,
		policy:      LRU,
		concurrency: DefaultConcurrency,
		attempts:    DefaultRetryAttempts,
		initial:     defaultRetryInitialDelay,
		max:         defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt.Apply(loader, cfg)
	}

	if cfg.concurrency < 1 {
		return nil, gerrors.NewErrValidationFailure(fmt.Errorf("concurrency must be positive, got %d", cfg.concurrency))
	}

	cache, err := NewCache(cfg.capacity, cfg.policy, loader.unloaded)
	if err != nil {
		return nil, gerrors.NewErrValidationFailure(err)
	}

	loader.cache = cache
	loader.sem = semaphore.NewWeighted(cfg.concurrency)
	loader.retrier = retry.NewRetrier(cfg.attempts, cfg.initial, cfg.max)
	return loader, nil
}

// Load returns the asset for key, holding a reference on its cache entry.
//
// A cached key is returned without I/O. A key with an in-flight load task
// attaches to that task and shares its result. Otherwise a new load starts,
// bounded by the configured concurrency limit.
func (x *Loader) Load(ctx context.Context, key string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, gerrors.NewErrCancelled(err)
	}
	for {
		if asset, ok := x.cache.Get(key); ok {
			x.hits.Inc()
			return asset, nil
		}

		task := newLoadTask(context.Background(), key)
		shared, started := x.tasks.SetIfAbsent(key, task)
		if !started {
			task.cancel()
			if !shared.attach() {
				// the shared task settled under us: retry the lookup
				continue
			}
			return shared.await(ctx, x.cache.Release)
		}

		x.misses.Inc()
		task.attach()
		go x.run(task)
		return task.await(ctx, x.cache.Release)
	}
}

// LoadChain iterates a priority-ordered fallback chain and returns the first
// key that loads. When fallback loading is disabled only the first key is
// tried. When every key fails a composed FallbackError is returned; the
// caller may then substitute a programmatic placeholder.
func (x *Loader) LoadChain(ctx context.Context, keys []string) (*Asset, error) {
	if len(keys) == 0 {
		return nil, gerrors.NewErrValidationFailure(errors.New("fallback chain is empty"))
	}
	chain := keys
	if !x.fallback {
		chain = keys[:1]
	}

	attempted := make([]string, 0, len(chain))
	causes := make([]error, 0, len(chain))
	for _, key := range chain {
		asset, err := x.Load(ctx, key)
		if err == nil {
			return asset, nil
		}
		if gerrors.IsCancellation(err) {
			return nil, err
		}
		x.logger.Debugf("resource=(%s) failed, trying next fallback: %v", key, err)
		attempted = append(attempted, key)
		causes = append(causes, err)
	}
	return nil, gerrors.NewFallbackError(attempted, causes)
}

// Release drops the caller's reference on the cached key.
func (x *Loader) Release(key string) {
	x.cache.Release(key)
}

// Unload explicitly removes the key from the cache, notifying the provider.
// It is a no-op while a load for the same key is outstanding: pending loads
// pin their key.
func (x *Loader) Unload(key string) bool {
	if _, inFlight := x.tasks.Get(key); inFlight {
		x.logger.Debugf("resource=(%s) unload skipped: load in flight", key)
		return false
	}
	return x.cache.Remove(key)
}

// Cache exposes the underlying cache.
func (x *Loader) Cache() *Cache {
	return x.cache
}

// Stats returns a snapshot of the loader counters.
func (x *Loader) Stats() Stats {
	return Stats{
		CacheHits:     x.hits.Load(),
		CacheMisses:   x.misses.Load(),
		Failures:      x.failures.Load(),
		Cancellations: x.cancellations.Load(),
		InFlight:      x.inFlight.Load(),
		CacheLen:      x.cache.Len(),
		CacheCapacity: x.cache.Capacity(),
	}
}

// run executes a load task to completion. It is the only writer of the
// cache entry for the task's key.
func (x *Loader) run(task *loadTask) {
	defer func() {
		if r := recover(); r != nil {
			x.failures.Inc()
			x.tasks.Delete(task.key)
			task.complete(nil, gerrors.NewErrLoadFailure(task.key, gerrors.NewPanicError(fmt.Errorf("%v", r))))
		}
	}()

	x.inFlight.Inc()
	defer x.inFlight.Dec()

	if err := x.sem.Acquire(task.ctx, 1); err != nil {
		x.cancellations.Inc()
		x.tasks.Delete(task.key)
		task.complete(nil, gerrors.NewErrCancelled(err))
		return
	}
	defer x.sem.Release(1)

	var asset *Asset
	err := x.retrier.RunContext(task.ctx, func(ctx context.Context) error {
		loaded, err := x.provider.Load(ctx, task.key)
		switch {
		case err == nil:
			if loaded == nil {
				return retry.Stop(gerrors.NewErrResourceNotFound(task.key))
			}
			asset = loaded
			return nil
		case gerrors.IsCancellation(err):
			return retry.Stop(err)
		case errors.Is(err, gerrors.ErrNotFound):
			return retry.Stop(err)
		default:
			// transient provider error: retry with backoff
			return err
		}
	})

	switch {
	case err == nil:
		refs := task.freeze()
		x.cache.Put(task.key, asset, refs)
		x.tasks.Delete(task.key)
		task.complete(asset, nil)
	case gerrors.IsCancellation(err) || task.cancelled.Load():
		x.cancellations.Inc()
		x.tasks.Delete(task.key)
		task.complete(nil, gerrors.NewErrCancelled(err))
	default:
		x.failures.Inc()
		x.tasks.Delete(task.key)
		task.complete(nil, gerrors.NewErrLoadFailure(task.key, err))
	}
}

// unloaded is the cache eviction callback.
func (x *Loader) unloaded(key string, _ *Asset) {
	x.logger.Debugf("resource=(%s) evicted", key)
	x.provider.Unload(key)
}
