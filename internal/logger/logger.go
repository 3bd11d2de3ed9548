// Package logger provides centralized logging for the meta-command interpreter and model registry.
// It configures structured logging with support for different output destinations and log levels.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

// output is where the global and component loggers write.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets up the logger from CLI flags and the environment.
// CLI flags take precedence over LPUB_LOG_LEVEL.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("LPUB_LOG_LEVEL"))
	}
	if level == "" {
		level = "info"
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		w = file
	}
	output = w

	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(level))

	if testMode {
		// deterministic output
		Logger.SetTimeFormat("")
		Logger.SetLevel(log.InfoLevel)
	}

	return nil
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	output = w
	Logger.SetOutput(w)
}

// ParseLevel converts a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// ParseFailure reports a meta line that did not parse.
func ParseFailure(model string, line int, text string, rc string) {
	Error("Parse failed", "model", model, "line", line, "rc", rc, "text", text)
}

// SubfileOperation logs a registry mutation for debugging.
func SubfileOperation(operation string, name string, details ...interface{}) {
	Debug("Subfile operation", "operation", operation, "model", name, "details", details)
}

// CycleDetected reports a submodel reference that leads back to a model being walked.
func CycleDetected(stage string, path []string) {
	Warn("Submodel cycle", "stage", stage, "path", strings.Join(path, " -> "))
}

// NewStyledLogger creates a component logger with custom level styles and a prefix
// (e.g. "Meta", "LDraw", "Counter").
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("33")). // Blue background
		Foreground(lipgloss.Color("15"))  // White text

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")). // Red background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("240")). // Gray background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("214")). // Orange background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("88")). // Dark red background
		Foreground(lipgloss.Color("15"))  // White text

	styles.Keys["model"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))  // Purple
	styles.Keys["line"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))   // Blue
	styles.Keys["rc"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))    // Orange
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // Red
	styles.Keys["file"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))   // Green
	styles.Keys["path"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))   // Cyan

	styles.Values["model"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
