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

package appearance

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/stagehand-engine/stagehand/internal/validation"
)

// LayerSlot enumerates the composition slots of a layered character.
type LayerSlot int

const (
	// SlotBase is the base pose layer, always present and drawn first.
	SlotBase LayerSlot = iota
	// SlotExpression layers are drawn above the base, in registration order.
	SlotExpression
	// SlotOutfit layers are drawn above the expressions.
	SlotOutfit
	// SlotAccessory layers are drawn last, in front of everything.
	SlotAccessory
)

// String returns the string representation of the LayerSlot.
func (x LayerSlot) String() string {
	switch x {
	case SlotBase:
		return "base"
	case SlotExpression:
		return "expression"
	case SlotOutfit:
		return "outfit"
	case SlotAccessory:
		return "accessory"
	default:
		return "unknown"
	}
}

// code returns the short key segment for the slot.
func (x LayerSlot) code() string {
	switch x {
	case SlotExpression:
		return "exp"
	case SlotOutfit:
		return "fit"
	case SlotAccessory:
		return "acc"
	default:
		return "base"
	}
}

// Layer is one independently-resolved visual component of a layered
// appearance. Keys is its own fallback chain, most specific first:
// pose-specific path, universal (pose-agnostic) path, bare legacy path.
type Layer struct {
	Slot  LayerSlot
	Index int
	Keys  []string
}

// LayeredCharacter describes a character composed of independently loaded
// layers. Composition order (back to front) is fixed: base pose, expression
// layers in registration order, outfit layers, accessory layers.
type LayeredCharacter struct {
	BasePose         Pose
	ExpressionLayers []int
	OutfitLayers     []int
	AccessoryLayers  []int
}

var _ Appearance = LayeredCharacter{}

// Family returns CharacterFamily.
func (x LayeredCharacter) Family() Family {
	return CharacterFamily
}

// ResourceKey returns the canonical key of the base layer, e.g.
// char_alice_base_standing.
func (x LayeredCharacter) ResourceKey(actorID string) string {
	return fmt.Sprintf("char_%s_base_%s", ident(actorID), x.BasePose)
}

// FallbackKeys returns the base layer's fallback chain. The remaining layers
// carry their own chains, see Layers.
func (x LayeredCharacter) FallbackKeys(actorID string) []string {
	return x.baseLayer(actorID).Keys
}

// Layers resolves every layer independently and returns them in composition
// order. An appearance with no expression, outfit or accessory layers still
// resolves to the base layer alone.
func (x LayeredCharacter) Layers(actorID string) []Layer {
	layers := make([]Layer, 0, 1+len(x.ExpressionLayers)+len(x.OutfitLayers)+len(x.AccessoryLayers))
	layers = append(layers, x.baseLayer(actorID))
	for _, id := range x.ExpressionLayers {
		layers = append(layers, x.layer(actorID, SlotExpression, id))
	}
	for _, id := range x.OutfitLayers {
		layers = append(layers, x.layer(actorID, SlotOutfit, id))
	}
	for _, id := range x.AccessoryLayers {
		layers = append(layers, x.layer(actorID, SlotAccessory, id))
	}
	return layers
}

func (x LayeredCharacter) baseLayer(actorID string) Layer {
	id := ident(actorID)
	return Layer{
		Slot:  SlotBase,
		Index: 0,
		Keys: []string{
			x.ResourceKey(id),
			fmt.Sprintf("char_%s_base_uni", id),
			fmt.Sprintf("char_%s", id),
		},
	}
}

// layer builds the fallback chain of a non-base layer: pose-specific path,
// universal path, bare legacy path.
func (x LayeredCharacter) layer(actorID string, slot LayerSlot, id int) Layer {
	stem := fmt.Sprintf("char_%s_%s_%s", ident(actorID), slot.code(), variant(id))
	return Layer{
		Slot:  slot,
		Index: id,
		Keys: []string{
			fmt.Sprintf("%s_%s", stem, x.BasePose),
			stem + "_uni",
			stem,
		},
	}
}

// Labels returns the batch-load labels.
func (x LayeredCharacter) Labels(actorID string) mapset.Set[string] {
	labels := baseLabels(actorID, CharacterFamily)
	labels.Add("layered")
	labels.Add("pose:" + x.BasePose.String())
	return labels
}

// Equal reports structural equality, including layer registration order.
func (x LayeredCharacter) Equal(other Appearance) bool {
	o, ok := other.(LayeredCharacter)
	return ok &&
		x.BasePose == o.BasePose &&
		slices.Equal(x.ExpressionLayers, o.ExpressionLayers) &&
		slices.Equal(x.OutfitLayers, o.OutfitLayers) &&
		slices.Equal(x.AccessoryLayers, o.AccessoryLayers)
}

// Validate checks the appearance invariants.
func (x LayeredCharacter) Validate() error {
	chain := validation.New(validation.FailFast()).
		AddAssertion(x.BasePose >= 0 && int(x.BasePose) < numPoses, "base pose is unknown")
	for _, ids := range [][]int{x.ExpressionLayers, x.OutfitLayers, x.AccessoryLayers} {
		for _, id := range ids {
			chain.AddAssertion(id >= 0, "layer id must be non-negative")
		}
	}
	return chain.Validate()
}

// String returns a human-readable summary.
func (x LayeredCharacter) String() string {
	return fmt.Sprintf("LayeredCharacter(pose=%s, expressions=%d, outfits=%d, accessories=%d)",
		x.BasePose, len(x.ExpressionLayers), len(x.OutfitLayers), len(x.AccessoryLayers))
}
