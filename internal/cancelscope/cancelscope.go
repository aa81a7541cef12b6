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

// Package cancelscope provides an explicit hierarchy of cancellation scopes.
//
// A Scope wraps a context.Context and keeps track of its child scopes and of
// the operations running under it. Cancelling a scope cancels and joins every
// child scope first, then cancels the scope's own context and waits for its
// tracked operations to settle. Teardown order is therefore deterministic:
// no child outlives its parent.
package cancelscope

import (
	"context"
	"sync"
)

// Scope is a node in a cancellation hierarchy.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	parent    *Scope
	children  map[*Scope]struct{}
	cancelled bool

	ops sync.WaitGroup
}

// NewRoot creates a root scope bound to the given parent context.
// Cancelling the parent context cancels the whole hierarchy through the
// usual context propagation; calling Cancel additionally joins children
// in deterministic order.
func NewRoot(ctx context.Context) *Scope {
	child, cancel := context.WithCancel(ctx)
	return &Scope{
		ctx:      child,
		cancel:   cancel,
		children: make(map[*Scope]struct{}),
	}
}

// Child creates a child scope. A child created under an already-cancelled
// scope is born cancelled.
func (x *Scope) Child() *Scope {
	ctx, cancel := context.WithCancel(x.ctx)
	child := &Scope{
		ctx:      ctx,
		cancel:   cancel,
		parent:   x,
		children: make(map[*Scope]struct{}),
	}

	x.mu.Lock()
	if x.cancelled {
		x.mu.Unlock()
		cancel()
		child.cancelled = true
		return child
	}
	x.children[child] = struct{}{}
	x.mu.Unlock()
	return child
}

// Context returns the scope's context.
func (x *Scope) Context() context.Context {
	return x.ctx
}

// Done returns a channel closed when the scope's context is cancelled.
func (x *Scope) Done() <-chan struct{} {
	return x.ctx.Done()
}

// Cancelled reports whether Cancel has been called on the scope.
func (x *Scope) Cancelled() bool {
	x.mu.Lock()
	cancelled := x.cancelled
	x.mu.Unlock()
	return cancelled
}

// Track registers an in-flight operation with the scope and returns the
// function that marks it settled. Cancel waits for all tracked operations.
func (x *Scope) Track() func() {
	x.ops.Add(1)
	var once sync.Once
	return func() {
		once.Do(x.ops.Done)
	}
}

// Go runs fn under the scope's context as a tracked operation.
func (x *Scope) Go(fn func(ctx context.Context)) {
	done := x.Track()
	go func() {
		defer done()
		fn(x.ctx)
	}()
}

// Cancel cancels the scope: every child scope is cancelled and joined
// depth-first, then the scope's own context is cancelled and its tracked
// operations are awaited. Cancel is idempotent and safe for concurrent use.
func (x *Scope) Cancel() {
	x.mu.Lock()
	if x.cancelled {
		x.mu.Unlock()
		x.ops.Wait()
		return
	}
	x.cancelled = true
	children := make([]*Scope, 0, len(x.children))
	for child := range x.children {
		children = append(children, child)
	}
	x.children = make(map[*Scope]struct{})
	x.mu.Unlock()

	for _, child := range children {
		child.Cancel()
	}

	x.cancel()
	x.ops.Wait()

	if x.parent != nil {
		x.parent.removeChild(x)
	}
}

// removeChild detaches a settled child so the parent does not retain it.
func (x *Scope) removeChild(child *Scope) {
	x.mu.Lock()
	delete(x.children, child)
	x.mu.Unlock()
}
