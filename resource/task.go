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
	"sync"

	"go.uber.org/atomic"

	gerrors "github.com/stagehand-engine/stagehand/errors"
)

// loadTask is a single in-flight load shared by every concurrent requester
// of the same key. Invariant: at most one loadTask per key at any time;
// requesters attach to the existing task instead of issuing duplicate loads.
//
// The task owns its own context, detached from any single requester's, so
// that one caller cancelling does not abort the load for the others. When
// the last attached waiter detaches, the task context is cancelled and the
// underlying provider call aborts.
type loadTask struct {
	key    string
	ctx    context.Context
	cancel context.CancelFunc

	done chan struct{}
	once sync.Once

	asset *Asset
	err   error

	waiters   atomic.Int64
	completed atomic.Bool
	cancelled atomic.Bool
}

func newLoadTask(parent context.Context, key string) *loadTask {
	ctx, cancel := context.WithCancel(parent)
	return &loadTask{
		key:    key,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// attach registers a new waiter. It returns false when the task no longer
// accepts waiters (it settled or was cancelled); the caller should retry
// the cache/task lookup.
func (t *loadTask) attach() bool {
	if t.completed.Load() || t.cancelled.Load() {
		return false
	}
	t.waiters.Inc()
	// re-check: the task may have settled between the guard and the increment
	if t.completed.Load() || t.cancelled.Load() {
		t.waiters.Dec()
		return false
	}
	return true
}

// detach unregisters a waiter. The last waiter to leave an unfinished task
// cancels the underlying load. A waiter abandoning an already-successful
// task gives back the cache reference that was granted on its behalf via
// the release callback.
func (t *loadTask) detach(release func(key string)) {
	if t.completed.Load() {
		// the runner is publishing the result: wait for it so the granted
		// reference exists before it is given back
		<-t.done
		if t.err == nil && release != nil {
			release(t.key)
		}
		return
	}
	if t.waiters.Dec() <= 0 && t.cancelled.CompareAndSwap(false, true) {
		t.cancel()
	}
}

// await blocks until the task settles or ctx is cancelled. A caller whose
// context is cancelled detaches from the task and receives a cancellation
// error; the shared load keeps running for the remaining waiters.
func (t *loadTask) await(ctx context.Context, release func(key string)) (*Asset, error) {
	select {
	case <-t.done:
		return t.asset, t.err
	case <-ctx.Done():
		// the task may have settled at the same instant: prefer its result
		select {
		case <-t.done:
			return t.asset, t.err
		default:
		}
		t.detach(release)
		return nil, gerrors.NewErrCancelled(ctx.Err())
	}
}

// freeze stops waiter registration and returns the number of waiters that
// will consume the result. Called by the runner right before publishing a
// successful load to the cache.
func (t *loadTask) freeze() int {
	t.completed.Store(true)
	return int(t.waiters.Load())
}

// complete settles the task exactly once.
func (t *loadTask) complete(asset *Asset, err error) {
	t.once.Do(func() {
		t.asset = asset
		t.err = err
		t.completed.Store(true)
		close(t.done)
		t.cancel()
	})
}
