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

	"github.com/stagehand-engine/stagehand/appearance"
	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/eventstream"
	"github.com/stagehand-engine/stagehand/internal/cancelscope"
	"github.com/stagehand-engine/stagehand/internal/syncmap"
	"github.com/stagehand-engine/stagehand/log"
	"github.com/stagehand-engine/stagehand/resource"
)

// opKind discriminates the lifecycle operation families for the single
// flight rule: identical kinds join the in-flight operation, conflicting
// kinds cancel and join the stale one first.
type opKind int

const (
	opLoad opKind = iota
	opUnload
	opDestroy
	opChange
)

func (x opKind) String() string {
	switch x {
	case opLoad:
		return "load"
	case opUnload:
		return "unload"
	case opDestroy:
		return "destroy"
	case opChange:
		return "change-appearance"
	default:
		return "unknown"
	}
}

// operation is one in-flight lifecycle operation on an actor.
type operation struct {
	kind  opKind
	scope *cancelscope.Scope
	done  chan struct{}
	err   error
}

// Coordinator sequences init, load, unload, destroy and appearance changes
// with cancellation guarantees. Every operation runs under a per-actor
// scope that is a child of the engine root scope: cancelling the root
// cancels every actor's in-flight operation, children joined before the
// parent settles.
//
// Invariant: at most one lifecycle operation per actor is in flight at a
// time.
type Coordinator struct {
	registry *Registry
	loader   *resource.Loader
	stream   eventstream.Stream
	logger   log.Logger
	root     *cancelscope.Scope

	ops *syncmap.SyncMap[string, *operation]
}

// NewCoordinator creates a coordinator operating under the given root scope.
func NewCoordinator(registry *Registry, loader *resource.Loader, stream eventstream.Stream, root *cancelscope.Scope, logger log.Logger) *Coordinator {
	return &Coordinator{
		registry: registry,
		loader:   loader,
		stream:   stream,
		logger:   logger,
		root:     root,
		ops:      syncmap.New[string, *operation](),
	}
}

// Init registers the actor with the engine. The actor starts Unloaded.
func (x *Coordinator) Init(_ context.Context, actor *Actor) error {
	if actor == nil {
		return gerrors.ErrValidationFailure
	}
	if !x.registry.Register(actor) {
		return gerrors.NewErrActorAlreadyExists(actor.ID())
	}
	x.logger.Infof("actor=(%s) kind=(%s) initialized", actor.ID(), actor.Kind())
	return nil
}

// Load resolves the actor's appearance and loads every layer, holding one
// cache reference per resident key. A second Load while one is in flight
// joins it. Cancellation releases everything already acquired and reverts
// the actor to Unloaded; a true failure moves it to Errored.
func (x *Coordinator) Load(ctx context.Context, actor *Actor) error {
	return x.perform(ctx, actor, opLoad, func(opCtx context.Context) error {
		switch actor.LoadState() {
		case Loaded:
			return nil
		case Destroyed:
			return gerrors.ErrActorDestroyed
		}
		if !actor.transitionLoad(Loading) {
			return gerrors.NewErrInvalidTransition(actor.LoadState().String(), Loading.String())
		}

		keys, err := x.loadLayers(opCtx, actor, actor.Appearance())
		switch {
		case err == nil:
			actor.setLoadedKeys(keys)
			actor.clearFailure()
			actor.transitionLoad(Loaded)
			x.publish(TopicActorLoaded, LoadedEvent{ActorID: actor.ID(), Keys: keys})
			x.logger.Infof("actor=(%s) loaded %d keys", actor.ID(), len(keys))
			return nil
		case gerrors.IsCancellation(err):
			actor.transitionLoad(Unloaded)
			x.logger.Debugf("actor=(%s) load cancelled: %v", actor.ID(), err)
			return err
		default:
			actor.setFailure(err.Error())
			actor.transitionLoad(Errored)
			x.publish(TopicActorError, ErrorEvent{ActorID: actor.ID(), Message: err.Error()})
			x.logger.Warnf("actor=(%s) load failed: %v", actor.ID(), err)
			return err
		}
	})
}

// Unload releases every cache reference the actor holds and reverts it to
// Unloaded. Unloading an Unloaded actor is a no-op.
func (x *Coordinator) Unload(ctx context.Context, actor *Actor) error {
	return x.perform(ctx, actor, opUnload, func(context.Context) error {
		switch actor.LoadState() {
		case Unloaded:
			return nil
		case Destroyed:
			return gerrors.ErrActorDestroyed
		}
		if !actor.transitionLoad(Unloading) {
			return gerrors.NewErrInvalidTransition(actor.LoadState().String(), Unloading.String())
		}

		x.releaseKeys(actor.takeLoadedKeys())
		actor.transitionLoad(Unloaded)
		x.publish(TopicActorUnloaded, UnloadedEvent{ActorID: actor.ID()})
		x.logger.Infof("actor=(%s) unloaded", actor.ID())
		return nil
	})
}

// Destroy tears the actor down: any in-flight operation is cancelled and
// joined first, held resources are released, the state becomes Destroyed
// and the actor leaves the registry. Destroy never leaves an actor stuck
// in Loading. Destroying a destroyed actor is a no-op.
func (x *Coordinator) Destroy(ctx context.Context, actor *Actor) error {
	return x.perform(ctx, actor, opDestroy, func(context.Context) error {
		if actor.LoadState() == Destroyed {
			return nil
		}
		x.releaseKeys(actor.takeLoadedKeys())
		actor.transitionLoad(Destroyed)
		x.registry.Unregister(actor.ID())
		x.logger.Infof("actor=(%s) destroyed", actor.ID())
		return nil
	})
}

// ChangeAppearance swaps the actor's appearance transactionally: the new
// appearance's assets are loaded first, the live appearance is swapped only
// on success and the old keys are released afterwards. On failure or
// cancellation the live appearance and its resident keys are untouched.
//
// An actor that holds no resources swaps without loading; the next Load
// picks the new appearance up.
func (x *Coordinator) ChangeAppearance(ctx context.Context, actor *Actor, next appearance.Appearance) error {
	return x.perform(ctx, actor, opChange, func(opCtx context.Context) error {
		switch actor.LoadState() {
		case Destroyed:
			return gerrors.ErrActorDestroyed
		case Loaded:
		default:
			if _, err := appearance.Resolve(actor.ID(), next); err != nil {
				return err
			}
			actor.setAppearance(next)
			return nil
		}
		if appearance.Equal(actor.Appearance(), next) {
			return nil
		}

		keys, err := x.loadLayers(opCtx, actor, next)
		if err != nil {
			if !gerrors.IsCancellation(err) {
				x.publish(TopicActorError, ErrorEvent{ActorID: actor.ID(), Message: err.Error()})
				x.logger.Warnf("actor=(%s) appearance change failed, keeping previous: %v", actor.ID(), err)
			}
			return err
		}

		old := actor.LoadedKeys()
		actor.setAppearance(next)
		actor.setLoadedKeys(keys)
		x.releaseKeys(old)
		x.publish(TopicActorLoaded, LoadedEvent{ActorID: actor.ID(), Keys: keys})
		x.logger.Infof("actor=(%s) appearance changed to %s", actor.ID(), next)
		return nil
	})
}

// CancelAll cancels every in-flight operation and joins them through the
// root scope hierarchy.
func (x *Coordinator) CancelAll() {
	x.root.Cancel()
}

// InFlight returns the number of lifecycle operations currently running.
func (x *Coordinator) InFlight() int {
	return x.ops.Len()
}

// perform runs fn as the actor's single in-flight lifecycle operation.
//
// When an operation of the same kind is already running the caller joins it
// and shares its result. A conflicting operation is cancelled and joined
// before fn starts. A destroy in flight cannot be superseded: later
// requests of other kinds fail with ErrActorDestroyed.
func (x *Coordinator) perform(ctx context.Context, actor *Actor, kind opKind, fn func(ctx context.Context) error) error {
	if actor == nil {
		return gerrors.ErrValidationFailure
	}
	if err := ctx.Err(); err != nil {
		return gerrors.NewErrCancelled(err)
	}

	id := actor.ID()
	for {
		op := &operation{
			kind:  kind,
			scope: x.root.Child(),
			done:  make(chan struct{}),
		}
		current, started := x.ops.SetIfAbsent(id, op)
		if !started {
			op.scope.Cancel()
			if current.kind == kind {
				// identical operation: join it
				select {
				case <-current.done:
					return current.err
				case <-ctx.Done():
					return gerrors.NewErrCancelled(ctx.Err())
				}
			}
			if current.kind == opDestroy {
				return gerrors.ErrActorDestroyed
			}
			// conflicting operation: cancel the stale one and wait it out
			x.logger.Debugf("actor=(%s) %s superseding in-flight %s", id, kind, current.kind)
			current.scope.Cancel()
			select {
			case <-current.done:
			case <-ctx.Done():
				return gerrors.NewErrCancelled(ctx.Err())
			}
			continue
		}

		settle := op.scope.Track()
		// fn observes both the operation scope and the caller's context:
		// a superseder cancels the scope, the caller cancels ctx.
		runCtx, cancelRun := context.WithCancel(op.scope.Context())
		stop := context.AfterFunc(ctx, cancelRun)
		op.err = fn(runCtx)
		stop()
		cancelRun()
		x.ops.CompareAndDelete(id, func(v *operation) bool { return v == op })
		close(op.done)
		settle()
		op.scope.Cancel()
		return op.err
	}
}

// loadLayers resolves the appearance and walks each layer's fallback chain.
// On any failure the keys already acquired are released so a failed or
// cancelled load holds nothing.
func (x *Coordinator) loadLayers(ctx context.Context, actor *Actor, a appearance.Appearance) ([]string, error) {
	res, err := appearance.Resolve(actor.ID(), a)
	if err != nil {
		return nil, err
	}

	total := len(res.Layers)
	keys := make([]string, 0, total)
	for i, layer := range res.Layers {
		asset, err := x.loader.LoadChain(ctx, layer.Keys)
		if err != nil {
			x.releaseKeys(keys)
			return nil, err
		}
		keys = append(keys, asset.Key)
		x.publish(TopicLoadProgress, LoadProgressEvent{
			ActorID:  actor.ID(),
			Fraction: float64(i+1) / float64(total),
		})
	}
	return keys, nil
}

// releaseKeys drops one cache reference per key.
func (x *Coordinator) releaseKeys(keys []string) {
	for _, key := range keys {
		x.loader.Release(key)
	}
}

func (x *Coordinator) publish(topic string, payload any) {
	if x.stream != nil {
		x.stream.Publish(topic, payload)
	}
}
