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

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With Info", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Info("stage ready")
		require.NoError(t, logger.Sync())

		var fields map[string]any
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &fields))
		assert.Equal(t, "info", fields["level"])
		assert.Equal(t, "stage ready", fields["msg"])
		assert.Equal(t, InfoLevel, logger.LogLevel())
		assert.Len(t, logger.LogOutput(), 1)
	})
	t.Run("With Debug filtered at info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debug("noise")
		assert.Empty(t, buffer.String())
	})
	t.Run("With Warnf formatting", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		logger.Warnf("actor=(%s) slow load", "alice")
		assert.True(t, strings.Contains(buffer.String(), "actor=(alice) slow load"))
	})
	t.Run("With Errorf", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Errorf("load failed: %s", "boom")
		assert.Contains(t, buffer.String(), "load failed: boom")
	})
}

func TestDiscardLogger(t *testing.T) {
	t.Run("With all levels discarded", func(t *testing.T) {
		DiscardLogger.Info("ignored")
		DiscardLogger.Infof("ignored %d", 1)
		DiscardLogger.Warn("ignored")
		DiscardLogger.Error("ignored")
		assert.Equal(t, Level(InvalidLevel), DiscardLogger.LogLevel())
		assert.Len(t, DiscardLogger.LogOutput(), 1)
	})
	t.Run("With Panic", func(t *testing.T) {
		assert.Panics(t, func() {
			DiscardLogger.Panic("boom")
		})
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
