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

	"go.uber.org/multierr"

	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/eventstream"
)

// Registry is the thread-safe store of live actors: a primary id map plus
// kind-specific secondary maps for characters and backgrounds, all guarded
// by a single mutex so registration and duplicate detection are atomic.
//
// Invariant: every actor present in a secondary map is present in the
// primary map, and every character or background in the primary map is
// present in its secondary map. Validate checks both directions.
type Registry struct {
	mu          sync.RWMutex
	actors      map[string]*Actor
	characters  map[string]*Actor
	backgrounds map[string]*Actor

	stream eventstream.Stream
}

// NewRegistry creates an empty registry publishing registration events to
// the given stream. A nil stream disables notifications.
func NewRegistry(stream eventstream.Stream) *Registry {
	return &Registry{
		actors:      make(map[string]*Actor),
		characters:  make(map[string]*Actor),
		backgrounds: make(map[string]*Actor),
		stream:      stream,
	}
}

// Register adds the actor under its id. It returns false, without mutating
// anything, for a nil actor, an empty id or a duplicate id. Duplicate
// detection and insertion happen under one critical section.
func (x *Registry) Register(actor *Actor) bool {
	if actor == nil || actor.ID() == "" {
		return false
	}

	x.mu.Lock()
	if _, exists := x.actors[actor.ID()]; exists {
		x.mu.Unlock()
		return false
	}
	x.actors[actor.ID()] = actor
	switch actor.Kind() {
	case CharacterKind:
		x.characters[actor.ID()] = actor
	case BackgroundKind:
		x.backgrounds[actor.ID()] = actor
	}
	x.mu.Unlock()

	x.publish(TopicActorRegistered, RegisteredEvent{Actor: actor})
	return true
}

// Unregister removes the actor from the primary map and every secondary map
// and publishes the bare id. It returns false when the id is unknown.
func (x *Registry) Unregister(id string) bool {
	x.mu.Lock()
	if _, exists := x.actors[id]; !exists {
		x.mu.Unlock()
		return false
	}
	delete(x.actors, id)
	delete(x.characters, id)
	delete(x.backgrounds, id)
	x.mu.Unlock()

	x.publish(TopicActorUnregistered, UnregisteredEvent{ActorID: id})
	return true
}

// Get returns the actor for id or an ErrNotFound.
func (x *Registry) Get(id string) (*Actor, error) {
	x.mu.RLock()
	actor, ok := x.actors[id]
	x.mu.RUnlock()
	if !ok {
		return nil, gerrors.NewErrActorNotFound(id)
	}
	return actor, nil
}

// TryGet returns the actor for id and whether it exists.
func (x *Registry) TryGet(id string) (*Actor, bool) {
	x.mu.RLock()
	actor, ok := x.actors[id]
	x.mu.RUnlock()
	return actor, ok
}

// Exists reports whether an actor with the given id is registered.
func (x *Registry) Exists(id string) bool {
	x.mu.RLock()
	_, ok := x.actors[id]
	x.mu.RUnlock()
	return ok
}

// OfKind returns a snapshot of the actors of the given kind.
func (x *Registry) OfKind(kind Kind) []*Actor {
	x.mu.RLock()
	defer x.mu.RUnlock()

	switch kind {
	case CharacterKind:
		return collect(x.characters)
	case BackgroundKind:
		return collect(x.backgrounds)
	default:
		out := make([]*Actor, 0)
		for _, actor := range x.actors {
			if actor.Kind() == kind {
				out = append(out, actor)
			}
		}
		return out
	}
}

// All returns a snapshot of every registered actor.
func (x *Registry) All() []*Actor {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return collect(x.actors)
}

// IDs returns a snapshot of the registered actor ids.
func (x *Registry) IDs() []string {
	x.mu.RLock()
	ids := make([]string, 0, len(x.actors))
	for id := range x.actors {
		ids = append(ids, id)
	}
	x.mu.RUnlock()
	return ids
}

// Len returns the number of registered actors.
func (x *Registry) Len() int {
	x.mu.RLock()
	l := len(x.actors)
	x.mu.RUnlock()
	return l
}

// Clear removes every actor and publishes one unregistration per id.
func (x *Registry) Clear() {
	x.mu.Lock()
	ids := make([]string, 0, len(x.actors))
	for id := range x.actors {
		ids = append(ids, id)
	}
	x.actors = make(map[string]*Actor)
	x.characters = make(map[string]*Actor)
	x.backgrounds = make(map[string]*Actor)
	x.mu.Unlock()

	for _, id := range ids {
		x.publish(TopicActorUnregistered, UnregisteredEvent{ActorID: id})
	}
}

// Validate checks the cross-map consistency invariant and reports every
// orphan found in either direction. A nil return means the maps agree.
func (x *Registry) Validate() error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var violations error
	for id, actor := range x.actors {
		switch actor.Kind() {
		case CharacterKind:
			if _, ok := x.characters[id]; !ok {
				violations = multierr.Append(violations,
					fmt.Errorf("character actor=(%s) missing from the character map", id))
			}
		case BackgroundKind:
			if _, ok := x.backgrounds[id]; !ok {
				violations = multierr.Append(violations,
					fmt.Errorf("background actor=(%s) missing from the background map", id))
			}
		}
	}
	for id := range x.characters {
		if _, ok := x.actors[id]; !ok {
			violations = multierr.Append(violations,
				fmt.Errorf("orphaned character entry actor=(%s)", id))
		}
	}
	for id := range x.backgrounds {
		if _, ok := x.actors[id]; !ok {
			violations = multierr.Append(violations,
				fmt.Errorf("orphaned background entry actor=(%s)", id))
		}
	}
	return violations
}

func (x *Registry) publish(topic string, payload any) {
	if x.stream != nil {
		x.stream.Publish(topic, payload)
	}
}

func collect(m map[string]*Actor) []*Actor {
	out := make([]*Actor, 0, len(m))
	for _, actor := range m {
		out = append(out, actor)
	}
	return out
}
