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

// Expression enumerates character facial expressions.
type Expression int

const (
	// Neutral is the default expression and the expression-level fallback.
	Neutral Expression = iota
	// Happy expression.
	Happy
	// Sad expression.
	Sad
	// Angry expression.
	Angry
	// Surprised expression.
	Surprised
	// Embarrassed expression.
	Embarrassed

	numExpressions = 6
)

var expressionNames = [numExpressions]string{
	Neutral:     "neutral",
	Happy:       "happy",
	Sad:         "sad",
	Angry:       "angry",
	Surprised:   "surprised",
	Embarrassed: "embarrassed",
}

// String returns the string representation of the Expression.
func (x Expression) String() string {
	if x < 0 || int(x) >= numExpressions {
		return "unknown"
	}
	return expressionNames[x]
}

// Pose enumerates character body poses.
type Pose int

const (
	// Standing pose.
	Standing Pose = iota
	// Sitting pose.
	Sitting
	// Walking pose.
	Walking
	// Pointing pose.
	Pointing

	numPoses = 4
)

var poseNames = [numPoses]string{
	Standing: "standing",
	Sitting:  "sitting",
	Walking:  "walking",
	Pointing: "pointing",
}

// String returns the string representation of the Pose.
func (x Pose) String() string {
	if x < 0 || int(x) >= numPoses {
		return "unknown"
	}
	return poseNames[x]
}

// Character describes a flat (non-layered) character appearance.
type Character struct {
	Expression Expression
	Pose       Pose
	OutfitID   int
}

var _ Appearance = Character{}

// Family returns CharacterFamily.
func (x Character) Family() Family {
	return CharacterFamily
}

// ResourceKey returns the canonical key, e.g.
// char_alice_happy_standing_02.
func (x Character) ResourceKey(actorID string) string {
	return fmt.Sprintf("char_%s_%s_%s_%s", ident(actorID), x.Expression, x.Pose, variant(x.OutfitID))
}

// FallbackKeys returns, in order: the canonical key, the pose-specific key
// without the outfit, the neutral-expression key, and the per-actor default.
func (x Character) FallbackKeys(actorID string) []string {
	id := ident(actorID)
	keys := []string{
		x.ResourceKey(id),
		fmt.Sprintf("char_%s_%s_%s", id, x.Expression, x.Pose),
	}
	if x.Expression != Neutral {
		keys = append(keys, fmt.Sprintf("char_%s_%s_%s", id, Neutral, x.Pose))
	}
	return append(keys, fmt.Sprintf("char_%s_default", id))
}

// Labels returns the batch-load labels.
func (x Character) Labels(actorID string) mapset.Set[string] {
	labels := baseLabels(actorID, CharacterFamily)
	labels.Add("pose:" + x.Pose.String())
	labels.Add("outfit:" + variant(x.OutfitID))
	return labels
}

// Equal reports structural equality.
func (x Character) Equal(other Appearance) bool {
	o, ok := other.(Character)
	return ok && x == o
}

// Validate checks the appearance invariants.
func (x Character) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(x.Expression >= 0 && int(x.Expression) < numExpressions, "expression is unknown").
		AddAssertion(x.Pose >= 0 && int(x.Pose) < numPoses, "pose is unknown").
		AddAssertion(x.OutfitID >= 0, "outfit id must be non-negative").
		Validate()
}

// String returns a human-readable summary.
func (x Character) String() string {
	return fmt.Sprintf("Character(expression=%s, pose=%s, outfit=%s)", x.Expression, x.Pose, variant(x.OutfitID))
}
