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

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/stagehand-engine/stagehand/internal/validation"
)

// GenericDefaultKey is the terminal fallback for generic appearances.
const GenericDefaultKey = "generic_default"

// Generic describes a composable visual that is neither a character nor a
// background, addressed by a free-form appearance identifier.
type Generic struct {
	AppearanceID string
	VariantID    int
}

var _ Appearance = Generic{}

// Family returns GenericFamily.
func (x Generic) Family() Family {
	return GenericFamily
}

// ResourceKey returns the canonical key, e.g. sparkle_03.
func (x Generic) ResourceKey(string) string {
	return fmt.Sprintf("%s_%s", x.AppearanceID, variant(x.VariantID))
}

// FallbackKeys returns the canonical key, the bare appearance id and the
// shared generic default.
func (x Generic) FallbackKeys(actorID string) []string {
	return []string{
		x.ResourceKey(actorID),
		x.AppearanceID,
		GenericDefaultKey,
	}
}

// Labels returns the batch-load labels.
func (x Generic) Labels(actorID string) mapset.Set[string] {
	labels := baseLabels(actorID, GenericFamily)
	labels.Add("appearance:" + x.AppearanceID)
	return labels
}

// Equal reports structural equality.
func (x Generic) Equal(other Appearance) bool {
	o, ok := other.(Generic)
	return ok && x == o
}

// Validate checks the appearance invariants.
func (x Generic) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewIdentifierValidator("appearance id", x.AppearanceID)).
		AddAssertion(x.VariantID >= 0, "variant id must be non-negative").
		Validate()
}

// String returns a human-readable summary.
func (x Generic) String() string {
	return fmt.Sprintf("Generic(id=%s, variant=%s)", x.AppearanceID, variant(x.VariantID))
}
