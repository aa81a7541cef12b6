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

// LoadState is the resource lifecycle state of an actor.
//
// The machine is Unloaded -> Loading -> Loaded -> Unloading -> Unloaded,
// with Errored reachable from Loading or Unloading, Loading re-enterable
// from Errored (retry), a cancelled load reverting to Unloaded, and
// Destroyed terminal from any state.
type LoadState int32

const (
	// Unloaded means the actor holds no loaded resources.
	Unloaded LoadState = iota
	// Loading means a resource load is in flight.
	Loading
	// Loaded means the actor's resources are resident.
	Loaded
	// Unloading means a resource unload is in flight.
	Unloading
	// Errored means the last load or unload failed.
	Errored
	// Destroyed is the terminal state.
	Destroyed
)

// String returns the string representation of the LoadState.
// It satisfies the fmt.Stringer interface.
func (x LoadState) String() string {
	switch x {
	case Unloaded:
		return "Unloaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Unloading:
		return "Unloading"
	case Errored:
		return "Errored"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// loadTransitions is the allowed transition table. Destroyed is reachable
// from every state and handled separately.
var loadTransitions = map[LoadState][]LoadState{
	Unloaded:  {Loading},
	Loading:   {Loaded, Errored, Unloaded},
	Loaded:    {Unloading},
	Unloading: {Unloaded, Errored},
	Errored:   {Loading, Unloading},
	Destroyed: nil,
}

// CanTransition reports whether moving from the receiver to the target state
// is allowed. Invalid transitions are rejected, never panicked on.
func (x LoadState) CanTransition(to LoadState) bool {
	if x == to {
		return false
	}
	if to == Destroyed {
		return x != Destroyed
	}
	for _, allowed := range loadTransitions[x] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VisibilityState is the on-screen visibility of an actor. It runs parallel
// to LoadState and is only meaningful once the actor is Loaded.
//
// The machine is Hidden <-> FadingIn <-> Visible <-> FadingOut <-> Hidden.
type VisibilityState int32

const (
	// Hidden means the actor is fully off screen.
	Hidden VisibilityState = iota
	// FadingIn means a show transition is in flight.
	FadingIn
	// Visible means the actor is fully on screen.
	Visible
	// FadingOut means a hide transition is in flight.
	FadingOut
)

// String returns the string representation of the VisibilityState.
// It satisfies the fmt.Stringer interface.
func (x VisibilityState) String() string {
	switch x {
	case Hidden:
		return "Hidden"
	case FadingIn:
		return "FadingIn"
	case Visible:
		return "Visible"
	case FadingOut:
		return "FadingOut"
	default:
		return "Unknown"
	}
}

var visibilityTransitions = map[VisibilityState][]VisibilityState{
	Hidden:    {FadingIn},
	FadingIn:  {Visible, Hidden},
	Visible:   {FadingOut},
	FadingOut: {Hidden, Visible},
}

// CanTransition reports whether moving from the receiver to the target state
// is allowed.
func (x VisibilityState) CanTransition(to VisibilityState) bool {
	for _, allowed := range visibilityTransitions[x] {
		if allowed == to {
			return true
		}
	}
	return false
}
