package ldraw

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a model name is not in the registry.
	ErrNotFound = errors.New("model not found")

	// ErrNoTopLevel is returned when an operation needs a loaded document and there is none.
	ErrNoTopLevel = errors.New("no top level model")

	// ErrLineRange is returned when a line number is outside a model's contents.
	ErrLineRange = errors.New("line number out of range")
)

// IOError is a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// CycleError is a submodel reference that leads back to a model still being walked.
// Path runs from the first model of the loop back to itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "submodel cycle: " + strings.Join(e.Path, " -> ")
}

// MarshalText renders the error message so reports can carry failures.
func (e *IOError) MarshalText() ([]byte, error) {
	return []byte(e.Error()), nil
}

// MarshalText renders the cycle path.
func (e *CycleError) MarshalText() ([]byte, error) {
	return []byte(strings.Join(e.Path, " -> ")), nil
}
