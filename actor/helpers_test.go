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
	"context"
	"testing"

	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/stagehand-engine/stagehand/config"
	"github.com/stagehand-engine/stagehand/log"
	"github.com/stagehand-engine/stagehand/resource"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testProvider is a scriptable resource provider for tests.
type testProvider struct {
	loads   atomic.Uint64
	unloads atomic.Uint64

	loadFn func(ctx context.Context, key string) (*resource.Asset, error)
}

func (p *testProvider) Load(ctx context.Context, key string) (*resource.Asset, error) {
	p.loads.Inc()
	if p.loadFn != nil {
		return p.loadFn(ctx, key)
	}
	return &resource.Asset{Key: key, Value: key}, nil
}

func (p *testProvider) Unload(string) {
	p.unloads.Inc()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New(
		config.WithLogger(log.DiscardLogger),
		config.WithCacheCapacity(32))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func testLoader(t *testing.T, provider resource.Provider) *resource.Loader {
	t.Helper()
	loader, err := resource.NewLoader(provider, resource.WithLogger(log.DiscardLogger))
	if err != nil {
		t.Fatal(err)
	}
	return loader
}
