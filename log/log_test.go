// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
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
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger(t *testing.T) {
	t.Run("With Debug log", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		logger.Debug("test debug")

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "test debug", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, DebugLevel.String(), lvl)
		assert.Equal(t, DebugLevel, logger.LogLevel())
	})
	t.Run("With Debugf log", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		logger.Debugf("step=%d", 3)

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "step=3", msg)
	})
	t.Run("With Info log", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Info("test info")

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "test info", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, InfoLevel.String(), lvl)

		buffer.Reset()
		logger.Debug("hidden")
		assert.Empty(t, buffer.Bytes())
		assert.False(t, logger.Enabled(DebugLevel))
		assert.True(t, logger.Enabled(ErrorLevel))
	})
	t.Run("With Warn log", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Warnf("retrying %s", "store")

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "retrying store", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, WarningLevel.String(), lvl)
		assert.Equal(t, WarningLevel, logger.LogLevel())

		buffer.Reset()
		logger.Info("hidden")
		assert.Empty(t, buffer.Bytes())
	})
	t.Run("With Error log", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Error("test error")

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "test error", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, ErrorLevel.String(), lvl)
		assert.Equal(t, ErrorLevel, logger.LogLevel())

		buffer.Reset()
		logger.Errorf("bug found after %d iterations", 4)
		msg, err = extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "bug found after 4 iterations", msg)
	})
	t.Run("With an unknown level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(7), buffer)
		assert.Equal(t, DebugLevel, logger.LogLevel())
	})
	t.Run("With outputs", func(t *testing.T) {
		logger := NewZap(InfoLevel)
		assert.Equal(t, []io.Writer{os.Stdout}, logger.LogOutput())
	})
}

func TestLogWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("machine", "Client(1)", "step", 12, "ordered", true).Info("dequeued")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		msg, _ := extractMessage(buffer.Bytes())
		assert.Equal(t, "dequeued", msg)
		assert.Contains(t, m, "machine")
		assert.Contains(t, m, "step")
		assert.Contains(t, m, "ordered")
	})
	t.Run("With no fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
	})
	t.Run("With a dangling key", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("orphan").Info("message")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		assert.Contains(t, m, "_")
	})
	t.Run("With non string keys skipped", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With(1, "value"))
	})
}

func TestFlush(t *testing.T) {
	t.Run("With file output", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "pcheck.log"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file, os.Stdout)
		logger.Info("persisted")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		msg, err := extractMessage(bytes.TrimSpace(content))
		require.NoError(t, err)
		assert.Equal(t, "persisted", msg)
	})
	t.Run("With closed file output", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "pcheck.log"))
		require.NoError(t, err)
		require.NoError(t, file.Close())

		logger := NewZap(InfoLevel, file)
		assert.Error(t, logger.Flush())
	})
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	logger.Info("ignored")
	logger.Debugf("ignored %d", 1)
	assert.False(t, logger.Enabled(ErrorLevel))
	assert.Equal(t, InfoLevel, logger.LogLevel())
	assert.Equal(t, DiscardLogger, logger.With("key", "value"))
	assert.Equal(t, []io.Writer{io.Discard}, logger.LogOutput())
	assert.NoError(t, logger.Flush())
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "info", InfoLevel.String())
	assert.Equal(t, "warn", WarningLevel.String())
	assert.Equal(t, "error", ErrorLevel.String())
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "invalid", InvalidLevel.String())

	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarningLevel, ParseLevel("warn"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func extractMessage(bytes []byte) (string, error) {
	// a map container to decode the JSON structure into
	c := make(map[string]json.RawMessage)

	// unmarshal JSON
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	for k, v := range c {
		if k == "msg" {
			return strconv.Unquote(string(v))
		}
	}

	return "", nil
}

func extractLevel(bytes []byte) (string, error) {
	// a map container to decode the JSON structure into
	c := make(map[string]json.RawMessage)

	// unmarshal JSON
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	for k, v := range c {
		if k == "level" {
			return strconv.Unquote(string(v))
		}
	}

	return "", nil
}
