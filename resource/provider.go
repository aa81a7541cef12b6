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

// Package resource implements the deduplicated, cancellable asset loading
// pipeline: an abstract provider, a reference-counted bounded cache and a
// loader that shares in-flight loads between concurrent requesters.
package resource

import "context"

// Asset is an opaque handle to a loaded resource. The engine core never
// inspects Value; it only moves handles between the provider, the cache and
// the actors referencing them.
type Asset struct {
	Key   string
	Value any
}

// Provider is the abstract storage the loader pulls assets from. The core is
// agnostic to the underlying storage or transport.
//
// Load must honor ctx cancellation. Errors returned by Load are classified
// at the loader boundary; panics are recovered there as well.
type Provider interface {
	// Load fetches the asset stored under key.
	Load(ctx context.Context, key string) (*Asset, error)
	// Unload releases any provider-side resources held for key. It is called
	// when a cache entry for key is evicted or explicitly removed.
	Unload(key string)
}

// Placeholder returns the deterministic programmatic placeholder asset for
// an actor kind. It is substituted when a non-critical load exhausts its
// fallback chain.
func Placeholder(kind string) *Asset {
	return &Asset{Key: "placeholder_" + kind}
}
