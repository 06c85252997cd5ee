// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package logger also provides structured logging with JSON formatting,
// mirrored to an optional file log, for debug-mode diagnostics.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/archmagece/translocate/internal/config"
)

// StructuredLogger provides advanced logging capabilities.
type StructuredLogger struct {
	logger    *slog.Logger
	level     slog.Level
	context   map[string]interface{}
	sessionID string
	component string
}

// LogLevel represents logging levels.
type LogLevel string

const (
	// LevelDebug represents debug log level.
	LevelDebug LogLevel = "debug"
	// LevelInfo represents info log level.
	LevelInfo LogLevel = "info"
	// LevelWarn represents warning log level.
	LevelWarn LogLevel = "warn"
	// LevelError represents error log level.
	LevelError LogLevel = "error"
)

// CallerInfo represents caller information.
type CallerInfo struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func slogLevelOf(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger creates a new structured logger with console output,
// plus a JSON file log when logging.enabled is set in the global config
// (the teacher's dual-handler composition).
func NewStructuredLogger(component string, level LogLevel) *StructuredLogger {
	globalConfig, err := config.LoadGlobalConfig()
	if err != nil {
		globalConfig = config.DefaultGlobalConfig()
	}

	slogLevel := slogLevelOf(level)
	opts := &slog.HandlerOptions{Level: slogLevel}

	consoleHandler := newConsoleHandler(os.Stdout, slogLevel)

	var handler slog.Handler = consoleHandler
	if globalConfig.Logging.Enabled {
		if err := os.MkdirAll(filepath.Dir(globalConfig.Logging.FilePath), 0o750); err == nil {
			if fileWriter, err := os.OpenFile(globalConfig.Logging.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				jsonHandler := slog.NewJSONHandler(fileWriter, opts)
				handler = &multiHandler{handlers: []slog.Handler{consoleHandler, jsonHandler}}
			}
		}
	}

	return &StructuredLogger{
		logger:    slog.New(handler),
		level:     slogLevel,
		context:   make(map[string]interface{}),
		component: component,
		sessionID: uuid.NewString(),
	}
}

// WithContext adds context to the logger.
func (l *StructuredLogger) WithContext(key string, value interface{}) *StructuredLogger {
	newLogger := *l
	newLogger.context = make(map[string]interface{}, len(l.context)+1)
	for k, v := range l.context {
		newLogger.context[k] = v
	}
	newLogger.context[key] = value

	return &newLogger
}

// WithSession sets a session ID.
func (l *StructuredLogger) WithSession(sessionID string) *StructuredLogger {
	newLogger := *l
	newLogger.sessionID = sessionID

	return &newLogger
}

// Debug logs a debug message.
func (l *StructuredLogger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *StructuredLogger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *StructuredLogger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *StructuredLogger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, msg, args...)
}

// ErrorWithStack logs an error with its cause attached.
func (l *StructuredLogger) ErrorWithStack(err error, msg string, args ...interface{}) {
	l.logWithError(slog.LevelError, err, msg, args...)
}

// LogPerformance logs the elapsed time of a completed operation.
func (l *StructuredLogger) LogPerformance(operation string, duration time.Duration, metrics map[string]interface{}) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	memoryMB := float64(m.Alloc) / 1024 / 1024
	msg := fmt.Sprintf("%s completed in %v (heap %.2f MB)", operation, duration, memoryMB)

	if len(metrics) > 0 {
		var parts []string
		for k, v := range metrics {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		msg += fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	l.Info(msg)
}

func (l *StructuredLogger) log(level slog.Level, msg string, args ...interface{}) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	if !l.shouldShowLog(level) {
		return
	}

	caller := getCaller(2)

	attrs := make([]slog.Attr, 0, 4+len(l.context)+len(args)/2)
	attrs = append(attrs,
		slog.String("component", l.component),
		slog.String("sessionId", l.sessionID),
		slog.String("callerFile", caller.File),
		slog.Int("callerLine", caller.Line),
	)

	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}

	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				attrs = append(attrs, slog.Any(key, args[i+1]))
			}
		}
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (l *StructuredLogger) logWithError(level slog.Level, err error, msg string, args ...interface{}) {
	fullArgs := append(append([]interface{}{}, args...), "error", err.Error())
	l.log(level, msg, fullArgs...)
}

// shouldShowLog hides info/debug noise unless --verbose/--debug was passed,
// matching the SimpleLogger's console-first default; --quiet leaves only
// errors.
func (l *StructuredLogger) shouldShowLog(level slog.Level) bool {
	if level >= slog.LevelError {
		return true
	}
	if globalQuiet {
		return false
	}
	if IsDebugEnabled() {
		return true
	}
	if IsVerboseEnabled() {
		return level >= slog.LevelInfo
	}
	return level >= slog.LevelWarn
}

func getCaller(skip int) *CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return &CallerInfo{File: "unknown"}
	}

	fn := runtime.FuncForPC(pc)
	fnName := "unknown"
	if fn != nil {
		fnName = fn.Name()
	}

	return &CallerInfo{File: filepath.Base(file), Line: line, Function: fnName}
}

// consoleHandler renders slog records as human-readable, colorized lines.
type consoleHandler struct {
	writer io.Writer
	level  slog.Level
}

func newConsoleHandler(w io.Writer, level slog.Level) *consoleHandler {
	return &consoleHandler{writer: w, level: level}
}

func (ch *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= ch.level
}

func (ch *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time.Format("15:04:05")

	var component string
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = a.Value.String()
		}
		return true
	})

	contextStr := ""
	if component != "" {
		contextStr = fmt.Sprintf(" [%s]", component)
	}

	output := fmt.Sprintf("%s %s%s %s\n", timestamp, paintSlogLevel(record.Level), contextStr, record.Message)
	_, err := ch.writer.Write([]byte(output))
	return err
}

func (ch *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return ch }
func (ch *consoleHandler) WithGroup(_ string) slog.Handler      { return ch }

func paintSlogLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint("ERROR")
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint("WARN ")
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen).Sprint("INFO ")
	default:
		return color.New(color.FgCyan).Sprint("DEBUG")
	}
}

// multiHandler fans a record out to several slog.Handlers — the teacher's
// dual console+file logging, generalized to N handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (mh *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range mh.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (mh *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range mh.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (mh *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(mh.handlers))
	for i, h := range mh.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (mh *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(mh.handlers))
	for i, h := range mh.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}

