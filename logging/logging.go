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

// Package logging provides the imagepipe console logger with plain, color and
// JSON output formats. Library code logs through the context-based helpers
// (InfoContext, WarnContext, ...) so the logger configured by the CLI follows
// the request through planning and provisioning.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

// OutputType represents the output format for logs.
type OutputType int

// Output types for different log formats
const (
	PlainOutput OutputType = iota
	ColorOutput
	JSONOutput
)

// Log levels, ordered from least to most severe.
const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

// CustomLogger writes leveled messages to ConsoleWriter and command results
// to OutputWriter.
type CustomLogger struct {
	mu            sync.Mutex
	LogLevel      slog.Level
	OutputType    OutputType
	Quiet         bool
	Verbose       bool
	ConsoleWriter io.Writer
	OutputWriter  io.Writer
}

// NewCustomLogger creates a logger at the given level writing to stderr.
func NewCustomLogger(level slog.Level) *CustomLogger {
	return &CustomLogger{
		LogLevel:      level,
		OutputType:    PlainOutput,
		ConsoleWriter: os.Stderr,
		OutputWriter:  os.Stdout,
	}
}

// NewCustomLoggerWithOptions creates a logger from CLI-style settings.
func NewCustomLoggerWithOptions(logLevelStr, outputFormat string, quiet, verbose bool) *CustomLogger {
	logLevel := DetermineLogLevel(logLevelStr)

	outputType := PlainOutput
	switch outputFormat {
	case "json":
		outputType = JSONOutput
	case "color":
		outputType = ColorOutput
	}

	if verbose && logLevel > slog.LevelDebug {
		logLevel = slog.LevelDebug
	}

	return &CustomLogger{
		LogLevel:      logLevel,
		OutputType:    outputType,
		Quiet:         quiet,
		Verbose:       verbose,
		ConsoleWriter: os.Stderr,
		OutputWriter:  os.Stdout,
	}
}

func (l *CustomLogger) formatMessage(level LogLevel, message string, args ...interface{}) string {
	formattedMsg := fmt.Sprintf(message, args...)

	if l.OutputType != ColorOutput {
		return formattedMsg
	}

	switch level {
	case DebugLevel:
		return color.HiBlackString("[DEBUG] %s", formattedMsg)
	case InfoLevel:
		return color.HiGreenString("[INFO] %s", formattedMsg)
	case WarnLevel:
		return color.HiYellowString("[WARN] %s", formattedMsg)
	case ErrorLevel:
		return color.HiRedString("[ERROR] %s", formattedMsg)
	default:
		return formattedMsg
	}
}

// shouldShowLocked must be called while holding l.mu.
func (l *CustomLogger) shouldShowLocked(level LogLevel) bool {
	if l.Quiet {
		return level == ErrorLevel
	}
	if l.Verbose {
		return true
	}
	if level == DebugLevel {
		return l.LogLevel <= slog.LevelDebug
	}
	return toSlogLevel(level) >= l.LogLevel
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *CustomLogger) log(level LogLevel, message string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.shouldShowLocked(level) || l.ConsoleWriter == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	if l.OutputType == JSONOutput {
		entry := map[string]string{
			"time":    timestamp,
			"level":   level.String(),
			"message": fmt.Sprintf(message, args...),
		}
		if err := json.NewEncoder(l.ConsoleWriter).Encode(entry); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", timestamp, entry["message"])
		}
		return
	}

	formattedMsg := l.formatMessage(level, message, args...)
	if _, err := fmt.Fprintf(l.ConsoleWriter, "[%s] %s\n", timestamp, formattedMsg); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", timestamp, formattedMsg)
	}
}

// SetQuiet enables or disables quiet mode. In quiet mode only errors are shown.
func (l *CustomLogger) SetQuiet(quiet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (l *CustomLogger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Verbose = verbose
}

// IsQuiet returns whether the logger is in quiet mode.
func (l *CustomLogger) IsQuiet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Quiet
}

// Info logs an informational message.
func (l *CustomLogger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

// Warn logs a warning message.
func (l *CustomLogger) Warn(format string, args ...interface{}) {
	l.log(WarnLevel, format, args...)
}

// Debug logs a debug message.
func (l *CustomLogger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

// Error logs an error message. It accepts either an error, a format string,
// or any other value as the first argument.
func (l *CustomLogger) Error(firstArg interface{}, args ...interface{}) {
	switch v := firstArg.(type) {
	case error:
		l.log(ErrorLevel, "%s", v.Error())
	case string:
		l.log(ErrorLevel, v, args...)
	default:
		l.log(ErrorLevel, "%v", v)
	}
}

// Output writes a command result to OutputWriter. With JSON output the value
// is encoded as indented JSON, otherwise it is printed with fmt.Fprintln.
func (l *CustomLogger) Output(data interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.OutputWriter
	if w == nil {
		w = os.Stdout
	}

	if l.OutputType == JSONOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintln(w, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Print writes raw text to OutputWriter without adding a newline.
func (l *CustomLogger) Print(data string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.OutputWriter
	if w == nil {
		w = os.Stdout
	}
	if _, err := fmt.Fprint(w, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// DetermineLogLevel converts a string to slog.Level. Unknown values map to info.
func DetermineLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// WithLogger returns a new context carrying l.
func WithLogger(ctx context.Context, l *CustomLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx, or a new info-level logger when
// none is present.
func FromContext(ctx context.Context) *CustomLogger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*CustomLogger); ok && l != nil {
			return l
		}
	}
	return NewCustomLogger(slog.LevelInfo)
}

// InfoContext logs an informational message using the logger from context.
func InfoContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Info(message, args...)
}

// WarnContext logs a warning message using the logger from context.
func WarnContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Warn(message, args...)
}

// DebugContext logs a debug message using the logger from context.
func DebugContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Debug(message, args...)
}

// ErrorContext logs an error message using the logger from context.
func ErrorContext(ctx context.Context, firstArg interface{}, args ...interface{}) {
	FromContext(ctx).Error(firstArg, args...)
}

// OutputContext writes a command result using the logger from context.
func OutputContext(ctx context.Context, data interface{}) error {
	return FromContext(ctx).Output(data)
}

// PrintContext writes raw text using the logger from context.
func PrintContext(ctx context.Context, data string) error {
	return FromContext(ctx).Print(data)
}
