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

// Package config holds the engine-wide settings shared by the stage, the
// loader and the lifecycle coordinator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/stagehand-engine/stagehand/internal/validation"
	"github.com/stagehand-engine/stagehand/log"
	"github.com/stagehand-engine/stagehand/resource"
)

const (
	// DefaultCacheCapacity bounds the resource cache.
	DefaultCacheCapacity = resource.DefaultCacheCapacity
	// DefaultMaxConcurrentLoads bounds simultaneous provider loads.
	DefaultMaxConcurrentLoads = resource.DefaultConcurrency
	// DefaultLoadRetries is the number of tries for transient provider errors.
	DefaultLoadRetries = resource.DefaultRetryAttempts
	// DefaultFadeDuration is used when a show or hide does not specify one.
	DefaultFadeDuration = 300 * time.Millisecond
)

// Config is the engine configuration. Use New with options for programmatic
// setup or FromEnv for environment-driven setup; both apply the same
// defaults and validation.
type Config struct {
	logger             log.Logger
	cacheCapacity      int
	maxConcurrentLoads int64
	loadRetries        int
	fallbackEnabled    bool
	evictionPolicy     resource.EvictionPolicy
	fadeDuration       time.Duration
}

// envConfig mirrors the environment surface of Config.
type envConfig struct {
	CacheCapacity      int           `env:"STAGEHAND_CACHE_CAPACITY" envDefault:"64"`
	MaxConcurrentLoads int64         `env:"STAGEHAND_MAX_CONCURRENT_LOADS" envDefault:"4"`
	LoadRetries        int           `env:"STAGEHAND_LOAD_RETRIES" envDefault:"3"`
	FallbackEnabled    bool          `env:"STAGEHAND_FALLBACK_ENABLED" envDefault:"true"`
	EvictionPolicy     string        `env:"STAGEHAND_EVICTION_POLICY" envDefault:"LRU"`
	FadeDuration       time.Duration `env:"STAGEHAND_FADE_DURATION" envDefault:"300ms"`
}

// New creates a Config with the given options applied over the defaults.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:             log.DefaultLogger,
		cacheCapacity:      DefaultCacheCapacity,
		maxConcurrentLoads: DefaultMaxConcurrentLoads,
		loadRetries:        DefaultLoadRetries,
		fallbackEnabled:    true,
		evictionPolicy:     resource.LRU,
		fadeDuration:       DefaultFadeDuration,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv creates a Config from STAGEHAND_* environment variables, with
// options applied on top of the parsed values.
func FromEnv(opts ...Option) (*Config, error) {
	parsed, err := env.ParseAs[envConfig]()
	if err != nil {
		return nil, err
	}

	policy, err := parseEvictionPolicy(parsed.EvictionPolicy)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithCacheCapacity(parsed.CacheCapacity),
		WithMaxConcurrentLoads(parsed.MaxConcurrentLoads),
		WithLoadRetries(parsed.LoadRetries),
		WithEvictionPolicy(policy),
		WithFadeDuration(parsed.FadeDuration),
	}
	if !parsed.FallbackEnabled {
		base = append(base, WithoutFallback())
	}
	return New(append(base, opts...)...)
}

// Validate checks the configuration invariants.
func (x *Config) Validate() error {
	return validation.New(validation.AllErrors()).
		AddAssertion(x.logger != nil, "logger is required").
		AddAssertion(x.cacheCapacity > 0, "cache capacity must be positive").
		AddAssertion(x.maxConcurrentLoads > 0, "max concurrent loads must be positive").
		AddAssertion(x.loadRetries > 0, "load retries must be positive").
		AddAssertion(x.fadeDuration >= 0, "fade duration must not be negative").
		AddValidator(x.evictionPolicy).
		Validate()
}

// Logger returns the configured logger.
func (x *Config) Logger() log.Logger {
	return x.logger
}

// CacheCapacity returns the resource cache bound.
func (x *Config) CacheCapacity() int {
	return x.cacheCapacity
}

// MaxConcurrentLoads returns the provider concurrency bound.
func (x *Config) MaxConcurrentLoads() int64 {
	return x.maxConcurrentLoads
}

// LoadRetries returns the retry attempts for transient provider errors.
func (x *Config) LoadRetries() int {
	return x.loadRetries
}

// FallbackEnabled reports whether fallback chains are walked past the
// canonical key.
func (x *Config) FallbackEnabled() bool {
	return x.fallbackEnabled
}

// EvictionPolicy returns the cache eviction policy.
func (x *Config) EvictionPolicy() resource.EvictionPolicy {
	return x.evictionPolicy
}

// FadeDuration returns the default fade duration for show and hide.
func (x *Config) FadeDuration() time.Duration {
	return x.fadeDuration
}

func parseEvictionPolicy(name string) (resource.EvictionPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LRU":
		return resource.LRU, nil
	case "LFU":
		return resource.LFU, nil
	case "MRU":
		return resource.MRU, nil
	default:
		return 0, fmt.Errorf("%w: %s", resource.ErrInvalidEvictionPolicy, name)
	}
}
