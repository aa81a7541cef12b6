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
	"github.com/stagehand-engine/stagehand/eventstream"
	"github.com/stagehand-engine/stagehand/log"
)

// StageOption is the interface that applies a Stage option.
type StageOption interface {
	// Apply sets the StageOption value of a Stage.
	Apply(stage *Stage)
}

var _ StageOption = StageOptionFunc(nil)

// StageOptionFunc implements the StageOption interface.
type StageOptionFunc func(stage *Stage)

// Apply applies the Stage's option
func (f StageOptionFunc) Apply(stage *Stage) {
	f(stage)
}

// WithTransitionExecutor sets the executor that animates visibility
// transitions. The immediate executor is used when unset.
func WithTransitionExecutor(executor TransitionExecutor) StageOption {
	return StageOptionFunc(func(stage *Stage) {
		stage.executor = executor
	})
}

// WithEventStream replaces the stage's event stream.
func WithEventStream(stream eventstream.Stream) StageOption {
	return StageOptionFunc(func(stage *Stage) {
		stage.stream = stream
	})
}

// WithStageLogger overrides the configuration's logger for the stage.
func WithStageLogger(logger log.Logger) StageOption {
	return StageOptionFunc(func(stage *Stage) {
		stage.logger = logger
	})
}
