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
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/stagehand-engine/stagehand/internal/validation"
)

// BackgroundType enumerates background categories.
type BackgroundType int

const (
	// Scene backgrounds are regular location art.
	Scene BackgroundType = iota
	// Event backgrounds are full-screen event illustrations.
	Event
	// Menu backgrounds back UI screens.
	Menu

	numBackgroundTypes = 3
)

var backgroundTypeNames = [numBackgroundTypes]string{
	Scene: "scene",
	Event: "event",
	Menu:  "menu",
}

// String returns the string representation of the BackgroundType.
func (x BackgroundType) String() string {
	if x < 0 || int(x) >= numBackgroundTypes {
		return "unknown"
	}
	return backgroundTypeNames[x]
}

// Background describes a background appearance.
type Background struct {
	Type      BackgroundType
	Location  string
	VariantID int
}

var _ Appearance = Background{}

// Family returns BackgroundFamily.
func (x Background) Family() Family {
	return BackgroundFamily
}

// ResourceKey returns the canonical key, e.g. bg_bg1_scene_classroom_00.
func (x Background) ResourceKey(actorID string) string {
	return fmt.Sprintf("bg_%s_%s_%s_%s", ident(actorID), x.Type, x.location(), variant(x.VariantID))
}

// FallbackKeys returns, in order: the canonical key, the type+location key
// without the variant, the location-only key, and the per-actor default.
func (x Background) FallbackKeys(actorID string) []string {
	id := ident(actorID)
	return []string{
		x.ResourceKey(id),
		fmt.Sprintf("bg_%s_%s_%s", id, x.Type, x.location()),
		fmt.Sprintf("bg_%s_%s", id, x.location()),
		fmt.Sprintf("bg_%s_default", id),
	}
}

// Labels returns the batch-load labels.
func (x Background) Labels(actorID string) mapset.Set[string] {
	labels := baseLabels(actorID, BackgroundFamily)
	labels.Add("location:" + x.location())
	labels.Add("type:" + x.Type.String())
	return labels
}

// Equal reports structural equality. Locations compare case-insensitively
// since keys are generated lowercased.
func (x Background) Equal(other Appearance) bool {
	o, ok := other.(Background)
	return ok && x.Type == o.Type && x.location() == o.location() && x.VariantID == o.VariantID
}

// Validate checks the appearance invariants.
func (x Background) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(x.Type >= 0 && int(x.Type) < numBackgroundTypes, "background type is unknown").
		AddValidator(validation.NewIdentifierValidator("location", x.location())).
		AddAssertion(x.VariantID >= 0, "variant id must be non-negative").
		Validate()
}

// String returns a human-readable summary.
func (x Background) String() string {
	return fmt.Sprintf("Background(type=%s, location=%s, variant=%s)", x.Type, x.location(), variant(x.VariantID))
}

func (x Background) location() string {
	return strings.ToLower(strings.TrimSpace(x.Location))
}
