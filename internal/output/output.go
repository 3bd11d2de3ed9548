package output

import (
	"os"
	"sync"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

var (
	globalPrinter *Printer
	globalMu      sync.RWMutex
)

func init() {
	globalPrinter = NewPrinter()
}

// SetGlobalPrinter sets the printer used by the package-level functions.
func SetGlobalPrinter(printer *Printer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = printer
}

// GetGlobalPrinter returns the current global printer instance.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal replaces the global printer with one built from options.
func ConfigureGlobal(options ...Option) {
	SetGlobalPrinter(NewPrinter(options...))
}

// Println outputs text with newline using the global printer.
func Println(text string) {
	GetGlobalPrinter().Println(text)
}

// Printf outputs formatted text using the global printer.
func Printf(format string, args ...interface{}) {
	GetGlobalPrinter().Printf(format, args...)
}

// Info outputs informational text using the global printer.
func Info(text string) {
	GetGlobalPrinter().Info(text)
}

// Success outputs success text using the global printer.
func Success(text string) {
	GetGlobalPrinter().Success(text)
}

// Warning outputs warning text using the global printer.
func Warning(text string) {
	GetGlobalPrinter().Warning(text)
}

// Error outputs error text using the global printer.
func Error(text string) {
	GetGlobalPrinter().Error(text)
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// SupportsColor reports whether stdout is a terminal that renders colors.
// NO_COLOR and a dumb TERM disable colors.
func SupportsColor() bool {
	if !IsTerminal() {
		return false
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
}

// Width returns the stdout terminal width, or fallback when it is unknown.
func Width(fallback int) int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
