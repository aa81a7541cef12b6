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

	"github.com/stagehand-engine/stagehand/appearance"
	gerrors "github.com/stagehand-engine/stagehand/errors"
)

// AppearanceDescriptor is a flat, serialization-ready rendition of an
// appearance value. Only the fields of the named family are meaningful.
type AppearanceDescriptor struct {
	Family string `json:"family"`

	// character
	Expression int `json:"expression,omitempty"`
	Pose       int `json:"pose,omitempty"`
	OutfitID   int `json:"outfitId,omitempty"`

	// background
	BackgroundType int    `json:"backgroundType,omitempty"`
	Location       string `json:"location,omitempty"`
	VariantID      int    `json:"variantId,omitempty"`

	// generic
	AppearanceID string `json:"appearanceId,omitempty"`

	// layered character
	BasePose         int   `json:"basePose,omitempty"`
	ExpressionLayers []int `json:"expressionLayers,omitempty"`
	OutfitLayers     []int `json:"outfitLayers,omitempty"`
	AccessoryLayers  []int `json:"accessoryLayers,omitempty"`
}

const (
	familyCharacter = "character"
	familyLayered   = "layered"
	familyBack      = "background"
	familyGeneric   = "generic"
)

// Describe flattens an appearance into its descriptor.
func Describe(a appearance.Appearance) AppearanceDescriptor {
	switch v := a.(type) {
	case appearance.Character:
		return AppearanceDescriptor{
			Family:     familyCharacter,
			Expression: int(v.Expression),
			Pose:       int(v.Pose),
			OutfitID:   v.OutfitID,
		}
	case appearance.LayeredCharacter:
		return AppearanceDescriptor{
			Family:           familyLayered,
			BasePose:         int(v.BasePose),
			ExpressionLayers: v.ExpressionLayers,
			OutfitLayers:     v.OutfitLayers,
			AccessoryLayers:  v.AccessoryLayers,
		}
	case appearance.Background:
		return AppearanceDescriptor{
			Family:         familyBack,
			BackgroundType: int(v.Type),
			Location:       v.Location,
			VariantID:      v.VariantID,
		}
	case appearance.Generic:
		return AppearanceDescriptor{
			Family:       familyGeneric,
			AppearanceID: v.AppearanceID,
			VariantID:    v.VariantID,
		}
	default:
		return AppearanceDescriptor{}
	}
}

// Appearance rebuilds the appearance value described by the descriptor.
func (d AppearanceDescriptor) Appearance() (appearance.Appearance, error) {
	switch d.Family {
	case familyCharacter:
		return appearance.Character{
			Expression: appearance.Expression(d.Expression),
			Pose:       appearance.Pose(d.Pose),
			OutfitID:   d.OutfitID,
		}, nil
	case familyLayered:
		return appearance.LayeredCharacter{
			BasePose:         appearance.Pose(d.BasePose),
			ExpressionLayers: d.ExpressionLayers,
			OutfitLayers:     d.OutfitLayers,
			AccessoryLayers:  d.AccessoryLayers,
		}, nil
	case familyBack:
		return appearance.Background{
			Type:      appearance.BackgroundType(d.BackgroundType),
			Location:  d.Location,
			VariantID: d.VariantID,
		}, nil
	case familyGeneric:
		return appearance.Generic{
			AppearanceID: d.AppearanceID,
			VariantID:    d.VariantID,
		}, nil
	default:
		return nil, gerrors.NewErrValidationFailure(
			fmt.Errorf("unknown appearance family %q", d.Family))
	}
}

// StateSnapshot is an immutable capture of an actor's externally visible
// properties. It carries no object references and is owned by the caller
// once produced; any persistence format may serialize it.
type StateSnapshot struct {
	ID         string               `json:"id"`
	Kind       string               `json:"kind"`
	X          float64              `json:"x"`
	Y          float64              `json:"y"`
	Scale      float64              `json:"scale"`
	Rotation   float64              `json:"rotation"`
	Tint       uint32               `json:"tint"`
	Alpha      float64              `json:"alpha"`
	Visible    bool                 `json:"visible"`
	Appearance AppearanceDescriptor `json:"appearance"`
}

// Snapshot captures the actor's externally visible state.
func (x *Actor) Snapshot() StateSnapshot {
	pos := x.Position()
	return StateSnapshot{
		ID:         x.id,
		Kind:       x.kind.String(),
		X:          pos.X,
		Y:          pos.Y,
		Scale:      x.Scale(),
		Rotation:   x.Rotation(),
		Tint:       x.Tint(),
		Alpha:      x.Alpha(),
		Visible:    x.VisibilityState() == Visible,
		Appearance: Describe(x.Appearance()),
	}
}
