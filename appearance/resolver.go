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
	mapset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/stagehand-engine/stagehand/errors"
	"github.com/stagehand-engine/stagehand/internal/validation"
)

// layered is implemented by appearances that resolve per layer.
type layered interface {
	Layers(actorID string) []Layer
}

// Resolution is the output of Resolve: everything the loader needs to turn
// an appearance into loadable assets.
type Resolution struct {
	// Canonical is the most specific resource key.
	Canonical string
	// Fallbacks is the priority-ordered candidate list, canonical first.
	Fallbacks []string
	// Labels are the batch-load labels.
	Labels mapset.Set[string]
	// Layers carries one entry per independently-loaded layer in composition
	// order. Flat appearances resolve to a single layer whose chain is
	// Fallbacks.
	Layers []Layer
}

// Resolve validates the actor id and the appearance and produces its
// Resolution. It is a pure function of its inputs.
func Resolve(actorID string, a Appearance) (*Resolution, error) {
	if a == nil {
		return nil, gerrors.NewErrValidationFailure(
			validation.NewBooleanValidator(false, "appearance is required").Validate())
	}
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewIdentifierValidator("actor id", actorID)).
		AddValidator(a).
		Validate(); err != nil {
		return nil, gerrors.NewErrValidationFailure(err)
	}

	fallbacks := a.FallbackKeys(actorID)
	res := &Resolution{
		Canonical: a.ResourceKey(actorID),
		Fallbacks: fallbacks,
		Labels:    a.Labels(actorID),
	}

	if multi, ok := a.(layered); ok {
		res.Layers = multi.Layers(actorID)
		return res, nil
	}
	res.Layers = []Layer{{Slot: SlotBase, Keys: fallbacks}}
	return res, nil
}
