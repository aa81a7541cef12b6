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
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/stagehand-engine/stagehand/appearance"
	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/internal/validation"
)

// Position is a 2D stage position. The rendering layer owns its meaning;
// the core only stores and snapshots it.
type Position struct {
	X float64
	Y float64
}

// DefaultTint is the neutral packed RGBA tint.
const DefaultTint uint32 = 0xFFFFFFFF

// Actor is a managed visual entity with identity, appearance and lifecycle
// state. The id and kind are immutable after creation. Appearance, transform
// and loaded keys are guarded by the actor mutex; the state words are atomic
// so readers never block on a mutation in flight.
//
// Lifecycle mutations go through the Coordinator which guarantees at most
// one in-flight lifecycle operation per actor.
type Actor struct {
	id   string
	kind Kind

	mu          sync.RWMutex
	appearance  appearance.Appearance
	position    Position
	scale       float64
	rotation    float64
	tint        uint32
	alpha       float64
	loadedKeys  []string
	lastFailure string

	loadState  atomic.Int32
	visibility atomic.Int32
	failed     atomic.Bool
}

// New creates an actor in the Unloaded and Hidden states. The kind is
// derived from the appearance family.
func New(id string, a appearance.Appearance) (*Actor, error) {
	if a == nil {
		return nil, gerrors.NewErrValidationFailure(
			validation.NewBooleanValidator(false, "appearance is required").Validate())
	}
	if err := validation.NewIdentifierValidator("actor id", id).Validate(); err != nil {
		return nil, gerrors.NewErrValidationFailure(gerrors.NewErrInvalidActorID(id))
	}
	if err := a.Validate(); err != nil {
		return nil, gerrors.NewErrValidationFailure(err)
	}

	return &Actor{
		id:         id,
		kind:       KindOf(a.Family()),
		appearance: a,
		scale:      1,
		tint:       DefaultTint,
		alpha:      1,
	}, nil
}

// ID returns the actor's unique identifier.
func (x *Actor) ID() string {
	return x.id
}

// Kind returns the actor's kind.
func (x *Actor) Kind() Kind {
	return x.kind
}

// Appearance returns the actor's current appearance.
func (x *Actor) Appearance() appearance.Appearance {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.appearance
}

// setAppearance swaps the live appearance. Only the coordinator calls it,
// after the new appearance's assets are resident.
func (x *Actor) setAppearance(a appearance.Appearance) {
	x.mu.Lock()
	x.appearance = a
	x.mu.Unlock()
}

// Position returns the actor's stage position.
func (x *Actor) Position() Position {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.position
}

// SetPosition moves the actor.
func (x *Actor) SetPosition(p Position) {
	x.mu.Lock()
	x.position = p
	x.mu.Unlock()
}

// Scale returns the actor's uniform scale.
func (x *Actor) Scale() float64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.scale
}

// SetScale sets the actor's uniform scale.
func (x *Actor) SetScale(s float64) {
	x.mu.Lock()
	x.scale = s
	x.mu.Unlock()
}

// Rotation returns the actor's rotation in degrees.
func (x *Actor) Rotation() float64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.rotation
}

// SetRotation sets the actor's rotation in degrees.
func (x *Actor) SetRotation(r float64) {
	x.mu.Lock()
	x.rotation = r
	x.mu.Unlock()
}

// Tint returns the actor's packed RGBA tint.
func (x *Actor) Tint() uint32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tint
}

// SetTint sets the actor's packed RGBA tint.
func (x *Actor) SetTint(tint uint32) {
	x.mu.Lock()
	x.tint = tint
	x.mu.Unlock()
}

// Alpha returns the actor's opacity in [0, 1].
func (x *Actor) Alpha() float64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.alpha
}

// SetAlpha sets the actor's opacity in [0, 1].
func (x *Actor) SetAlpha(alpha float64) {
	x.mu.Lock()
	x.alpha = alpha
	x.mu.Unlock()
}

// LoadState returns the actor's current load state.
func (x *Actor) LoadState() LoadState {
	return LoadState(x.loadState.Load())
}

// VisibilityState returns the actor's current visibility state.
func (x *Actor) VisibilityState() VisibilityState {
	return VisibilityState(x.visibility.Load())
}

// transitionLoad atomically moves the load state to the target when the
// transition table allows it. It reports whether the move happened; an
// invalid transition leaves the state untouched.
func (x *Actor) transitionLoad(to LoadState) bool {
	for {
		current := x.loadState.Load()
		if !LoadState(current).CanTransition(to) {
			return false
		}
		if x.loadState.CompareAndSwap(current, int32(to)) {
			return true
		}
	}
}

// transitionVisibility atomically moves the visibility state to the target
// when the transition table allows it.
func (x *Actor) transitionVisibility(to VisibilityState) bool {
	for {
		current := x.visibility.Load()
		if !VisibilityState(current).CanTransition(to) {
			return false
		}
		if x.visibility.CompareAndSwap(current, int32(to)) {
			return true
		}
	}
}

// Failed reports whether the actor's last lifecycle operation failed.
func (x *Actor) Failed() bool {
	return x.failed.Load()
}

// LastFailure returns the message of the last failure, empty when none.
func (x *Actor) LastFailure() string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.lastFailure
}

// setFailure records a failure message and raises the failed flag.
func (x *Actor) setFailure(message string) {
	x.mu.Lock()
	x.lastFailure = message
	x.mu.Unlock()
	x.failed.Store(true)
}

// clearFailure resets the failed flag.
func (x *Actor) clearFailure() {
	x.mu.Lock()
	x.lastFailure = ""
	x.mu.Unlock()
	x.failed.Store(false)
}

// LoadedKeys returns a copy of the resource keys the actor holds references
// on, in layer composition order.
func (x *Actor) LoadedKeys() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	keys := make([]string, len(x.loadedKeys))
	copy(keys, x.loadedKeys)
	return keys
}

// setLoadedKeys replaces the actor's held resource keys.
func (x *Actor) setLoadedKeys(keys []string) {
	x.mu.Lock()
	x.loadedKeys = keys
	x.mu.Unlock()
}

// takeLoadedKeys returns the held keys and clears them in one step.
func (x *Actor) takeLoadedKeys() []string {
	x.mu.Lock()
	keys := x.loadedKeys
	x.loadedKeys = nil
	x.mu.Unlock()
	return keys
}

// DebugInfo returns a single-line human readable description of the actor.
func (x *Actor) DebugInfo() string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return fmt.Sprintf(
		"actor=(%s) kind=(%s) state=(%s/%s) appearance=(%s) pos=(%.1f,%.1f) scale=(%.2f) rot=(%.1f) alpha=(%.2f) keys=%d failed=%t",
		x.id,
		x.kind,
		LoadState(x.loadState.Load()),
		VisibilityState(x.visibility.Load()),
		x.appearance,
		x.position.X, x.position.Y,
		x.scale,
		x.rotation,
		x.alpha,
		len(x.loadedKeys),
		x.failed.Load(),
	)
}
