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

// Package actor implements the managed visual entities of the engine: the
// actor type itself, the kind-indexed registry, the lifecycle coordinator
// and the stage facade composing them.
package actor

import "github.com/stagehand-engine/stagehand/appearance"

// Kind tags an actor with its category. The kind is derived from the
// actor's initial appearance at spawn time and is immutable afterwards.
type Kind int

const (
	// CharacterKind marks character actors.
	CharacterKind Kind = iota
	// BackgroundKind marks background actors.
	BackgroundKind
	// GenericKind marks generic composable actors.
	GenericKind
)

// String returns the string representation of the Kind.
// It satisfies the fmt.Stringer interface.
func (x Kind) String() string {
	switch x {
	case CharacterKind:
		return "character"
	case BackgroundKind:
		return "background"
	case GenericKind:
		return "generic"
	default:
		return "unknown"
	}
}

// KindOf maps an appearance family to the actor kind it produces.
func KindOf(family appearance.Family) Kind {
	switch family {
	case appearance.CharacterFamily:
		return CharacterKind
	case appearance.BackgroundFamily:
		return BackgroundKind
	default:
		return GenericKind
	}
}
