// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package logger provides simple terminal output logging capabilities.
package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/archmagece/translocate/internal/config"
)

// Log level constants for simple logger (string format).
const (
	SimpleLevelDebug = "DEBUG"
	SimpleLevelInfo  = "INFO"
	SimpleLevelWarn  = "WARN"
	SimpleLevelError = "ERROR"
)

// Global flags for CLI logging control, set once in the root command's
// PersistentPreRun.
var (
	globalVerbose bool
	globalDebug   bool
	globalQuiet   bool
)

// IsDebugEnabled reports whether --debug was passed to the root command.
func IsDebugEnabled() bool { return globalDebug }

// IsVerboseEnabled reports whether --verbose was passed to the root command.
func IsVerboseEnabled() bool { return globalVerbose }

// CommonLogger defines the common interface for both structured and simple loggers.
type CommonLogger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	ErrorWithStack(err error, msg string, args ...interface{})
}

// SimpleLogger provides straightforward terminal output for better readability.
type SimpleLogger struct {
	component string
	context   map[string]interface{}
	sessionID string
	config    *config.CLILoggingConfig
}

// Ensure SimpleLogger implements CommonLogger interface.
var _ CommonLogger = (*SimpleLogger)(nil)

// NewSimpleLogger creates a new simple terminal logger for the given
// component ("translate", "translate-text", "review").
func NewSimpleLogger(component string) *SimpleLogger {
	globalConfig, err := config.LoadGlobalConfig()
	if err != nil {
		globalConfig = config.DefaultGlobalConfig()
	}
	cliConfig := &globalConfig.Logging.CLILogging

	return &SimpleLogger{
		component: component,
		context:   make(map[string]interface{}),
		sessionID: uuid.NewString(),
		config:    cliConfig,
	}
}

// WithContext adds context to the logger.
func (l *SimpleLogger) WithContext(key string, value interface{}) *SimpleLogger {
	newLogger := *l
	newLogger.context = make(map[string]interface{}, len(l.context)+1)
	for k, v := range l.context {
		newLogger.context[k] = v
	}
	newLogger.context[key] = value
	return &newLogger
}

// Debug prints a debug message.
func (l *SimpleLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(SimpleLevelDebug) {
		l.print(SimpleLevelDebug, msg, args...)
	}
}

// Info prints an info message.
func (l *SimpleLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(SimpleLevelInfo) {
		l.print(SimpleLevelInfo, msg, args...)
	}
}

// Warn prints a warning message.
func (l *SimpleLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(SimpleLevelWarn) {
		l.print(SimpleLevelWarn, msg, args...)
	}
}

// Error prints an error message.
func (l *SimpleLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(SimpleLevelError) {
		l.print(SimpleLevelError, msg, args...)
	}
}

// ErrorWithStack prints an error message with error details.
func (l *SimpleLogger) ErrorWithStack(err error, msg string, args ...interface{}) {
	if l.shouldLog(SimpleLevelError) {
		fullMsg := fmt.Sprintf("%s: %v", msg, err)
		l.print(SimpleLevelError, fullMsg, args...)
	}
}

// colorForLevel returns the fatih/color SprintFunc used to render the level
// tag, matching the teacher's ✓/✗ coloring convention for terminal status.
func colorForLevel(level string) func(a ...interface{}) string {
	switch level {
	case SimpleLevelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case SimpleLevelWarn:
		return color.New(color.FgYellow).SprintFunc()
	case SimpleLevelDebug:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}

// print outputs a formatted, colorized message to the terminal.
func (l *SimpleLogger) print(level string, msg string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")

	var contextParts []string

	if l.component != "" {
		contextParts = append(contextParts, l.component)
	}

	for k, v := range l.context {
		if k == "locale" || k == "file" {
			contextParts = append(contextParts, fmt.Sprintf("%v", v))
		}
	}

	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				if l.isImportantArg(key) || level == SimpleLevelDebug {
					contextParts = append(contextParts, fmt.Sprintf("%s=%v", key, args[i+1]))
				}
			}
		}
	}

	contextStr := ""
	if len(contextParts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(contextParts, " "))
	}

	paint := colorForLevel(level)
	output := fmt.Sprintf("%s %s%s %s", timestamp, paint(level), contextStr, msg)
	fmt.Println(output)
}

// isImportantArg determines if an argument should be shown at non-debug levels.
func (l *SimpleLogger) isImportantArg(key string) bool {
	importantArgs := map[string]bool{
		"attempt":    true,
		"locale":     true,
		"key":        true,
		"translated": true,
		"skipped":    true,
		"duration":   true,
		"file":       true,
		"reason":     true,
	}
	return importantArgs[key]
}

// shouldLog determines if a message should be logged based on configuration.
func (l *SimpleLogger) shouldLog(level string) bool {
	if globalQuiet {
		return level == SimpleLevelError
	}

	if globalDebug {
		return true
	}

	if globalVerbose {
		return level != SimpleLevelDebug
	}

	if l.config == nil {
		return level == SimpleLevelError || level == SimpleLevelWarn
	}

	if !l.config.Enabled {
		return level == SimpleLevelError
	}

	if l.config.Quiet {
		return level == SimpleLevelError
	}

	if l.config.OnlyErrors {
		return level == SimpleLevelError || level == SimpleLevelWarn
	}

	configLevel := strings.ToUpper(l.config.Level)
	switch configLevel {
	case SimpleLevelDebug:
		return true
	case SimpleLevelInfo:
		return level != SimpleLevelDebug
	case SimpleLevelWarn:
		return level == SimpleLevelWarn || level == SimpleLevelError
	case SimpleLevelError:
		return level == SimpleLevelError
	default:
		return level == SimpleLevelError || level == SimpleLevelWarn
	}
}

// SetGlobalLoggingFlags sets global logging flags that override config settings.
// Called once from the root command's PersistentPreRun.
func SetGlobalLoggingFlags(verbose, debug, quiet bool) {
	globalVerbose = verbose
	globalDebug = debug
	globalQuiet = quiet
}
