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

// Event stream topics published by the registry, the coordinator and the
// stage. Subscribers receive the payload structs below.
const (
	// TopicActorRegistered carries a RegisteredEvent.
	TopicActorRegistered = "actor.registered"
	// TopicActorUnregistered carries an UnregisteredEvent. Only the bare id
	// is published: the actor object may already be disposed.
	TopicActorUnregistered = "actor.unregistered"
	// TopicActorLoaded carries a LoadedEvent.
	TopicActorLoaded = "actor.loaded"
	// TopicActorUnloaded carries an UnloadedEvent.
	TopicActorUnloaded = "actor.unloaded"
	// TopicActorError carries an ErrorEvent.
	TopicActorError = "actor.error"
	// TopicLoadProgress carries a LoadProgressEvent.
	TopicLoadProgress = "actor.loadprogress"
	// TopicMainBackground carries a MainBackgroundEvent.
	TopicMainBackground = "stage.mainbackground"
)

// RegisteredEvent is published when an actor enters the registry.
type RegisteredEvent struct {
	Actor *Actor
}

// UnregisteredEvent is published when an actor leaves the registry.
type UnregisteredEvent struct {
	ActorID string
}

// LoadedEvent is published when an actor's resources become resident.
type LoadedEvent struct {
	ActorID string
	Keys    []string
}

// UnloadedEvent is published when an actor's resources are released.
type UnloadedEvent struct {
	ActorID string
}

// ErrorEvent is published when a lifecycle operation fails. Cancellations
// are not errors and are never published here.
type ErrorEvent struct {
	ActorID string
	Message string
}

// LoadProgressEvent is published once per resolved layer during a load.
// Fraction grows monotonically from 0 to 1 within one load operation.
type LoadProgressEvent struct {
	ActorID  string
	Fraction float64
}

// MainBackgroundEvent is published when the stage's main background changes.
// Previous is empty when no main background was set before.
type MainBackgroundEvent struct {
	Previous string
	Current  string
}
