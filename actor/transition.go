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
	"context"
	"time"
)

// Fade is the direction of a visibility transition.
type Fade int

const (
	// FadeIn brings an actor on screen.
	FadeIn Fade = iota
	// FadeOut takes an actor off screen.
	FadeOut
)

// String returns the string representation of the Fade.
// It satisfies the fmt.Stringer interface.
func (x Fade) String() string {
	if x == FadeOut {
		return "out"
	}
	return "in"
}

// Transition describes one visibility transition. The core treats its
// execution as opaque: the executor owns the interpolation.
type Transition struct {
	Fade     Fade
	Duration time.Duration
}

// TransitionExecutor runs visibility transitions. Execute blocks until the
// transition finishes or ctx is cancelled; the core never inspects how the
// executor animates.
type TransitionExecutor interface {
	Execute(ctx context.Context, actorID string, transition Transition) error
}

// immediateExecutor completes every transition instantly. It is the
// default when no executor is configured.
type immediateExecutor struct{}

var _ TransitionExecutor = immediateExecutor{}

// NewImmediateExecutor returns the built-in executor that completes every
// transition without animating.
func NewImmediateExecutor() TransitionExecutor {
	return immediateExecutor{}
}

func (immediateExecutor) Execute(ctx context.Context, _ string, _ Transition) error {
	return ctx.Err()
}
