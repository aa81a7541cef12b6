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

// Package appearance holds the structured appearance value types and the
// resolver that turns an appearance into ordered candidate resource keys.
// Resolution is pure: no I/O happens here.
package appearance

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Family tags an appearance with the actor kind it produces.
type Family int

const (
	// CharacterFamily marks character appearances.
	CharacterFamily Family = iota
	// BackgroundFamily marks background appearances.
	BackgroundFamily
	// GenericFamily marks generic composable appearances.
	GenericFamily
)

// String returns the string representation of the Family.
// It satisfies the fmt.Stringer interface.
func (x Family) String() string {
	switch x {
	case CharacterFamily:
		return "character"
	case BackgroundFamily:
		return "background"
	case GenericFamily:
		return "generic"
	default:
		return "unknown"
	}
}

// Appearance is a structured, strongly-typed description of how an actor
// should look, resolvable to one or more resource keys.
//
// Implementations are value types: equality is structural and all numeric
// identifiers must be non-negative.
type Appearance interface {
	fmt.Stringer
	// Family returns the actor kind family this appearance belongs to.
	Family() Family
	// ResourceKey returns the canonical resource key for the given actor.
	ResourceKey(actorID string) string
	// FallbackKeys returns the priority-ordered candidate keys for the given
	// actor, from most specific to least specific. The canonical key is
	// always first.
	FallbackKeys(actorID string) []string
	// Labels returns the batch-load labels for group preload and unload.
	Labels(actorID string) mapset.Set[string]
	// Equal reports structural equality with another appearance.
	Equal(other Appearance) bool
	// Validate checks the appearance invariants.
	Validate() error
}

// Equal reports structural equality between two appearances, treating two
// nil values as equal.
func Equal(a, b Appearance) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// variant renders a non-negative numeric id as a two-digit key segment.
func variant(id int) string {
	return fmt.Sprintf("%02d", id)
}

// ident normalizes an actor id for key and label generation. Generated keys
// are lowercase regardless of how the actor was named.
func ident(actorID string) string {
	return strings.ToLower(strings.TrimSpace(actorID))
}

// baseLabels returns the labels shared by every appearance family.
func baseLabels(actorID string, family Family) mapset.Set[string] {
	return mapset.NewSet(
		"actor:"+ident(actorID),
		"kind:"+family.String(),
	)
}
