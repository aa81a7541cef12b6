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

package config

import (
	"time"

	"github.com/stagehand-engine/stagehand/log"
	"github.com/stagehand-engine/stagehand/resource"
)

// Option is the interface that applies a Config option.
type Option interface {
	// Apply sets the Option value of a Config.
	Apply(cfg *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(cfg *Config)

// Apply applies the Config's option
func (f OptionFunc) Apply(cfg *Config) {
	f(cfg)
}

// WithLogger sets the logger to use.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.logger = logger
	})
}

// WithCacheCapacity bounds the resource cache.
func WithCacheCapacity(capacity int) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.cacheCapacity = capacity
	})
}

// WithMaxConcurrentLoads bounds simultaneous provider loads.
func WithMaxConcurrentLoads(loads int64) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.maxConcurrentLoads = loads
	})
}

// WithLoadRetries sets the retry attempts for transient provider errors.
func WithLoadRetries(retries int) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.loadRetries = retries
	})
}

// WithoutFallback restricts resource resolution to canonical keys.
func WithoutFallback() Option {
	return OptionFunc(func(cfg *Config) {
		cfg.fallbackEnabled = false
	})
}

// WithEvictionPolicy selects the cache eviction policy.
func WithEvictionPolicy(policy resource.EvictionPolicy) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.evictionPolicy = policy
	})
}

// WithFadeDuration sets the default fade duration for show and hide.
func WithFadeDuration(duration time.Duration) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.fadeDuration = duration
	})
}
