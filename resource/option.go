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
	"time"

	"github.com/stagehand-engine/stagehand/log"
)

// loaderConfig collects the construction-time knobs applied by options.
type loaderConfig struct {
	capacity    int
	policy      EvictionPolicy
	concurrency int64
	attempts    int
	initial     time.Duration
	max         time.Duration
}

// Option is the interface that applies a Loader option.
type Option interface {
	// Apply sets the Option value of a Loader.
	Apply(loader *Loader, cfg *loaderConfig)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(loader *Loader, cfg *loaderConfig)

// Apply applies the Loader's option
func (f OptionFunc) Apply(loader *Loader, cfg *loaderConfig) {
	f(loader, cfg)
}

// WithCacheCapacity bounds the number of cached assets.
func WithCacheCapacity(capacity int) Option {
	return OptionFunc(func(_ *Loader, cfg *loaderConfig) {
		cfg.capacity = capacity
	})
}

// WithEvictionPolicy selects the cache eviction policy.
func WithEvictionPolicy(policy EvictionPolicy) Option {
	return OptionFunc(func(_ *Loader, cfg *loaderConfig) {
		cfg.policy = policy
	})
}

// WithConcurrency bounds the number of simultaneous provider loads.
func WithConcurrency(concurrency int64) Option {
	return OptionFunc(func(_ *Loader, cfg *loaderConfig) {
		cfg.concurrency = concurrency
	})
}

// WithRetry configures the retry policy for transient provider errors.
func WithRetry(attempts int, initialDelay, maxDelay time.Duration) Option {
	return OptionFunc(func(_ *Loader, cfg *loaderConfig) {
		cfg.attempts = attempts
		cfg.initial = initialDelay
		cfg.max = maxDelay
	})
}

// WithLogger sets the logger to use.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(loader *Loader, _ *loaderConfig) {
		loader.logger = logger
	})
}

// WithoutFallback restricts LoadChain to the canonical key only.
func WithoutFallback() Option {
	return OptionFunc(func(loader *Loader, _ *loaderConfig) {
		loader.fallback = false
	})
}
