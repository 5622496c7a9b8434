/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level, format string, quiet, verbose bool) (*logging.CustomLogger, *bytes.Buffer, *bytes.Buffer) {
	logger := logging.NewCustomLoggerWithOptions(level, format, quiet, verbose)
	console := &bytes.Buffer{}
	output := &bytes.Buffer{}
	logger.ConsoleWriter = console
	logger.OutputWriter = output
	return logger, console, output
}

func TestNewCustomLogger(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
	}{
		{name: "info level", level: slog.LevelInfo},
		{name: "debug level", level: slog.LevelDebug},
		{name: "error level", level: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewCustomLogger(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.level, logger.LogLevel)
			assert.False(t, logger.Quiet)
			assert.Equal(t, logging.PlainOutput, logger.OutputType)
		})
	}
}

func TestNewCustomLoggerWithOptions(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		format     string
		verbose    bool
		wantLevel  slog.Level
		wantOutput logging.OutputType
	}{
		{name: "plain info", level: "info", format: "plain", wantLevel: slog.LevelInfo, wantOutput: logging.PlainOutput},
		{name: "json warn", level: "warn", format: "json", wantLevel: slog.LevelWarn, wantOutput: logging.JSONOutput},
		{name: "color error", level: "error", format: "color", wantLevel: slog.LevelError, wantOutput: logging.ColorOutput},
		{name: "verbose lowers level", level: "error", format: "plain", verbose: true, wantLevel: slog.LevelDebug, wantOutput: logging.PlainOutput},
		{name: "unknown level defaults to info", level: "loud", format: "", wantLevel: slog.LevelInfo, wantOutput: logging.PlainOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewCustomLoggerWithOptions(tt.level, tt.format, false, tt.verbose)
			assert.Equal(t, tt.wantLevel, logger.LogLevel)
			assert.Equal(t, tt.wantOutput, logger.OutputType)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, console, _ := newBufferedLogger("warn", "plain", false, false)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn %s", "message")
	logger.Error("error message")

	out := console.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestQuietMode(t *testing.T) {
	logger, console, _ := newBufferedLogger("debug", "plain", true, false)

	logger.Info("hidden")
	logger.Warn("hidden too")
	logger.Error(errors.New("shown"))

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.True(t, logger.IsQuiet())

	logger.SetQuiet(false)
	logger.Info("visible")
	assert.Contains(t, console.String(), "visible")
}

func TestErrorArgumentTypes(t *testing.T) {
	logger, console, _ := newBufferedLogger("info", "plain", false, false)

	logger.Error(errors.New("from error"))
	logger.Error("from %s", "format")
	logger.Error(42)

	out := console.String()
	assert.Contains(t, out, "from error")
	assert.Contains(t, out, "from format")
	assert.Contains(t, out, "42")
}

func TestJSONConsoleOutput(t *testing.T) {
	logger, console, _ := newBufferedLogger("info", "json", false, false)

	logger.Info("pipeline %s planned", "demo")

	var entry map[string]string
	require.NoError(t, json.Unmarshal(console.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "pipeline demo planned", entry["message"])
}

func TestOutput(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		logger, _, output := newBufferedLogger("info", "plain", false, false)
		require.NoError(t, logger.Output("hello"))
		assert.Equal(t, "hello\n", output.String())
	})

	t.Run("json", func(t *testing.T) {
		logger, _, output := newBufferedLogger("info", "json", false, false)
		require.NoError(t, logger.Output(map[string]int{"pipelines": 2}))
		assert.JSONEq(t, `{"pipelines": 2}`, output.String())
	})

	t.Run("quiet does not suppress output", func(t *testing.T) {
		logger, _, output := newBufferedLogger("info", "plain", true, false)
		require.NoError(t, logger.Print("raw"))
		assert.Equal(t, "raw", output.String())
	})
}

func TestContextHelpers(t *testing.T) {
	logger, console, output := newBufferedLogger("debug", "plain", false, false)
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))

	logging.InfoContext(ctx, "info %d", 1)
	logging.WarnContext(ctx, "warn %d", 2)
	logging.DebugContext(ctx, "debug %d", 3)
	logging.ErrorContext(ctx, "error %d", 4)
	require.NoError(t, logging.OutputContext(ctx, "result"))
	require.NoError(t, logging.PrintContext(ctx, "printed"))

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "result\nprinted", output.String())
}

func TestFromContextDefault(t *testing.T) {
	logger := logging.FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, slog.LevelInfo, logger.LogLevel)
}

func TestDetermineLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.DetermineLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.DetermineLogLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.DetermineLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.DetermineLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, logging.DetermineLogLevel(""))
}
