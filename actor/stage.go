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
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/stagehand-engine/stagehand/appearance"
	"github.com/stagehand-engine/stagehand/config"
	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/eventstream"
	"github.com/stagehand-engine/stagehand/internal/cancelscope"
	"github.com/stagehand-engine/stagehand/log"
	"github.com/stagehand-engine/stagehand/resource"
)

// Stage is the public facade of the engine core. It composes the registry,
// the resource loader and the lifecycle coordinator behind one API and
// remains fully usable with zero actors.
type Stage struct {
	cfg      *config.Config
	logger   log.Logger
	executor TransitionExecutor

	loader      *resource.Loader
	registry    *Registry
	coordinator *Coordinator
	stream      eventstream.Stream
	root        *cancelscope.Scope

	started atomic.Bool

	mainMu   sync.Mutex
	mainBack string
}

// Stats is an aggregate snapshot of the stage.
type Stats struct {
	Actors        int
	Characters    int
	Backgrounds   int
	Generics      int
	FailedActors  int
	PendingOps    int
	CacheHits     uint64
	CacheMisses   uint64
	LoadFailures  uint64
	Cancellations uint64
	CacheLen      int
	CacheCapacity int
}

// NewStage creates a stage for the given configuration and resource provider.
func NewStage(cfg *config.Config, provider resource.Provider, opts ...StageOption) (*Stage, error) {
	if cfg == nil {
		return nil, gerrors.NewErrValidationFailure(errors.New("config is required"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := &Stage{
		cfg:      cfg,
		logger:   cfg.Logger(),
		executor: NewImmediateExecutor(),
		stream:   eventstream.New(),
	}
	for _, opt := range opts {
		opt.Apply(stage)
	}

	loaderOpts := []resource.Option{
		resource.WithCacheCapacity(cfg.CacheCapacity()),
		resource.WithEvictionPolicy(cfg.EvictionPolicy()),
		resource.WithConcurrency(cfg.MaxConcurrentLoads()),
		resource.WithRetry(cfg.LoadRetries(), 50*time.Millisecond, time.Second),
		resource.WithLogger(stage.logger),
	}
	if !cfg.FallbackEnabled() {
		loaderOpts = append(loaderOpts, resource.WithoutFallback())
	}
	loader, err := resource.NewLoader(provider, loaderOpts...)
	if err != nil {
		return nil, err
	}

	stage.loader = loader
	stage.registry = NewRegistry(stage.stream)
	return stage, nil
}

// Start makes the stage operational. The given context is the parent of
// the engine root scope: cancelling it cancels every in-flight operation.
func (x *Stage) Start(ctx context.Context) error {
	if !x.started.CompareAndSwap(false, true) {
		return gerrors.ErrStageAlreadyStarted
	}
	x.root = cancelscope.NewRoot(ctx)
	x.coordinator = NewCoordinator(x.registry, x.loader, x.stream, x.root, x.logger)
	x.logger.Info("stage started")
	return nil
}

// Stop tears the stage down: every in-flight operation is cancelled and
// joined, every actor is destroyed, the cache is flushed and the event
// stream is closed.
func (x *Stage) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return gerrors.ErrStageNotStarted
	}

	x.root.Cancel()
	for _, actor := range x.registry.All() {
		if err := x.coordinator.Destroy(ctx, actor); err != nil && !gerrors.IsCancellation(err) {
			x.logger.Warnf("actor=(%s) destroy on stop failed: %v", actor.ID(), err)
		}
	}
	x.registry.Clear()
	x.loader.Cache().Clear()
	x.stream.Close()
	x.logger.Info("stage stopped")
	return nil
}

// Spawn creates, registers and loads a new actor. The kind is derived from
// the appearance family. A load failure during creation surfaces as a
// failed creation: the registration is rolled back and the error returned.
func (x *Stage) Spawn(ctx context.Context, id string, a appearance.Appearance) (*Actor, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrStageNotStarted
	}

	actor, err := New(id, a)
	if err != nil {
		return nil, err
	}
	if err := x.coordinator.Init(ctx, actor); err != nil {
		return nil, err
	}
	if err := x.coordinator.Load(ctx, actor); err != nil {
		if destroyErr := x.coordinator.Destroy(context.WithoutCancel(ctx), actor); destroyErr != nil {
			x.logger.Warnf("actor=(%s) rollback after failed creation: %v", id, destroyErr)
		}
		return nil, err
	}
	return actor, nil
}

// Destroy removes the actor from the stage, cancelling any in-flight
// operation on it first.
func (x *Stage) Destroy(ctx context.Context, id string) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}

	x.clearMainBackground(id)
	return x.coordinator.Destroy(ctx, actor)
}

// ChangeAppearance swaps an actor's appearance transactionally. When the
// change exhausts its fallback chain the actor adopts the requested
// appearance backed by the deterministic placeholder asset: the placeholder
// key replaces the resident keys with a held reference and a warning is
// logged, so a missing optional asset never fails the scene.
func (x *Stage) ChangeAppearance(ctx context.Context, id string, a appearance.Appearance) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}

	err = x.coordinator.ChangeAppearance(ctx, actor, a)
	var fallbackErr *gerrors.FallbackError
	if errors.As(err, &fallbackErr) {
		placeholder := resource.Placeholder(actor.Kind().String())
		x.loader.Cache().Put(placeholder.Key, placeholder, 1)
		old := actor.takeLoadedKeys()
		actor.setAppearance(a)
		actor.setLoadedKeys([]string{placeholder.Key})
		for _, key := range old {
			x.loader.Release(key)
		}
		x.logger.Warnf("actor=(%s) appearance change exhausted %d keys, placeholder substituted", id, len(fallbackErr.Keys()))
		return nil
	}
	return err
}

// Show fades the actor in over duration; a non-positive duration uses the
// configured fade duration. Showing a visible actor is a no-op. A cancelled
// transition reverts the actor to Hidden.
func (x *Stage) Show(ctx context.Context, id string, duration time.Duration) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	if duration <= 0 {
		duration = x.cfg.FadeDuration()
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}
	if actor.LoadState() == Destroyed {
		return gerrors.ErrActorDestroyed
	}
	if actor.VisibilityState() == Visible {
		return nil
	}
	if !actor.transitionVisibility(FadingIn) {
		// a parallel transition owns the actor: degrade to a no-op
		return nil
	}

	if err := x.executor.Execute(ctx, id, Transition{Fade: FadeIn, Duration: duration}); err != nil {
		actor.transitionVisibility(Hidden)
		if gerrors.IsCancellation(err) {
			return gerrors.NewErrCancelled(err)
		}
		return err
	}
	actor.transitionVisibility(Visible)
	actor.SetAlpha(1)
	return nil
}

// Hide fades the actor out over duration; a non-positive duration uses the
// configured fade duration. Hiding a hidden actor is a no-op.
func (x *Stage) Hide(ctx context.Context, id string, duration time.Duration) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	if duration <= 0 {
		duration = x.cfg.FadeDuration()
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}
	if actor.VisibilityState() == Hidden {
		return nil
	}
	if !actor.transitionVisibility(FadingOut) {
		return nil
	}

	if err := x.executor.Execute(ctx, id, Transition{Fade: FadeOut, Duration: duration}); err != nil {
		actor.transitionVisibility(Visible)
		if gerrors.IsCancellation(err) {
			return gerrors.NewErrCancelled(err)
		}
		return err
	}
	actor.transitionVisibility(Hidden)
	actor.SetAlpha(0)
	return nil
}

// ShowMany fades a batch of actors in concurrently.
func (x *Stage) ShowMany(ctx context.Context, ids []string, duration time.Duration) error {
	eg, egCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		eg.Go(func() error {
			return x.Show(egCtx, id, duration)
		})
	}
	return eg.Wait()
}

// HideMany fades a batch of actors out concurrently.
func (x *Stage) HideMany(ctx context.Context, ids []string, duration time.Duration) error {
	eg, egCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		eg.Go(func() error {
			return x.Hide(egCtx, id, duration)
		})
	}
	return eg.Wait()
}

// SetMainBackground promotes a background actor to the single main
// background: the new main is shown, the previous one fades out and the
// change is published. Setting the current main again is a no-op.
func (x *Stage) SetMainBackground(ctx context.Context, id string, fade time.Duration) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}
	if actor.Kind() != BackgroundKind {
		return gerrors.ErrNotABackground
	}

	x.mainMu.Lock()
	previous := x.mainBack
	if previous == id {
		x.mainMu.Unlock()
		return nil
	}
	x.mainBack = id
	x.mainMu.Unlock()

	if err := x.Show(ctx, id, fade); err != nil {
		return err
	}
	if previous != "" {
		if err := x.Hide(ctx, previous, fade); err != nil && !gerrors.IsCancellation(err) {
			x.logger.Warnf("actor=(%s) fade out of previous main background failed: %v", previous, err)
		}
	}

	x.stream.Publish(TopicMainBackground, MainBackgroundEvent{Previous: previous, Current: id})
	x.logger.Infof("main background changed to actor=(%s)", id)
	return nil
}

// MainBackground returns the current main background actor, if any.
func (x *Stage) MainBackground() (*Actor, bool) {
	x.mainMu.Lock()
	id := x.mainBack
	x.mainMu.Unlock()
	if id == "" {
		return nil, false
	}
	return x.registry.TryGet(id)
}

// clearMainBackground forgets the main background when it is destroyed.
func (x *Stage) clearMainBackground(id string) {
	x.mainMu.Lock()
	if x.mainBack == id {
		x.mainBack = ""
	}
	x.mainMu.Unlock()
}

// PreloadAll loads every actor that is not yet resident, concurrently.
func (x *Stage) PreloadAll(ctx context.Context) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, actor := range x.registry.All() {
		if actor.LoadState() == Loaded {
			continue
		}
		actor := actor
		eg.Go(func() error {
			return x.coordinator.Load(egCtx, actor)
		})
	}
	return eg.Wait()
}

// UnloadAll releases the resources of every loaded actor, concurrently.
func (x *Stage) UnloadAll(ctx context.Context) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, actor := range x.registry.All() {
		if actor.LoadState() != Loaded {
			continue
		}
		actor := actor
		eg.Go(func() error {
			return x.coordinator.Unload(egCtx, actor)
		})
	}
	return eg.Wait()
}

// GetState captures a serializable snapshot of the actor.
func (x *Stage) GetState(id string) (StateSnapshot, error) {
	actor, err := x.registry.Get(id)
	if err != nil {
		return StateSnapshot{}, err
	}
	return actor.Snapshot(), nil
}

// ApplyState restores an actor to a snapshot: transform and tint are set
// directly, a differing appearance goes through the transactional change
// and visibility is faded to match over the given duration.
func (x *Stage) ApplyState(ctx context.Context, id string, snap StateSnapshot, duration time.Duration) error {
	if !x.started.Load() {
		return gerrors.ErrStageNotStarted
	}
	actor, err := x.registry.Get(id)
	if err != nil {
		return err
	}

	next, err := snap.Appearance.Appearance()
	if err != nil {
		return err
	}
	if !appearance.Equal(actor.Appearance(), next) {
		if err := x.coordinator.ChangeAppearance(ctx, actor, next); err != nil {
			return err
		}
	}

	actor.SetPosition(Position{X: snap.X, Y: snap.Y})
	actor.SetScale(snap.Scale)
	actor.SetRotation(snap.Rotation)
	actor.SetTint(snap.Tint)
	actor.SetAlpha(snap.Alpha)

	if snap.Visible {
		return x.Show(ctx, id, duration)
	}
	return x.Hide(ctx, id, duration)
}

// Actor returns the actor for id.
func (x *Stage) Actor(id string) (*Actor, error) {
	return x.registry.Get(id)
}

// Exists reports whether an actor with the given id is on the stage.
func (x *Stage) Exists(id string) bool {
	return x.registry.Exists(id)
}

// IDs returns the ids of every actor on the stage.
func (x *Stage) IDs() []string {
	return x.registry.IDs()
}

// ActorsOfKind returns the actors of the given kind.
func (x *Stage) ActorsOfKind(kind Kind) []*Actor {
	return x.registry.OfKind(kind)
}

// Len returns the number of actors on the stage.
func (x *Stage) Len() int {
	return x.registry.Len()
}

// DebugInfo returns the actor's one-line diagnostic description.
func (x *Stage) DebugInfo(id string) (string, error) {
	actor, err := x.registry.Get(id)
	if err != nil {
		return "", err
	}
	return actor.DebugInfo(), nil
}

// Subscribe attaches a new subscriber to the engine event stream on the
// given topics.
func (x *Stage) Subscribe(topics ...string) eventstream.Subscriber {
	sub := x.stream.AddSubscriber()
	for _, topic := range topics {
		x.stream.Subscribe(sub, topic)
	}
	return sub
}

// Stats aggregates engine counters. Cancellations are reported separately
// and never counted as failures.
func (x *Stage) Stats() Stats {
	loaderStats := x.loader.Stats()
	stats := Stats{
		Actors:        x.registry.Len(),
		CacheHits:     loaderStats.CacheHits,
		CacheMisses:   loaderStats.CacheMisses,
		LoadFailures:  loaderStats.Failures,
		Cancellations: loaderStats.Cancellations,
		CacheLen:      loaderStats.CacheLen,
		CacheCapacity: loaderStats.CacheCapacity,
	}
	if x.coordinator != nil {
		stats.PendingOps = x.coordinator.InFlight()
	}
	for _, actor := range x.registry.All() {
		switch actor.Kind() {
		case CharacterKind:
			stats.Characters++
		case BackgroundKind:
			stats.Backgrounds++
		default:
			stats.Generics++
		}
		if actor.Failed() {
			stats.FailedActors++
		}
	}
	return stats
}
