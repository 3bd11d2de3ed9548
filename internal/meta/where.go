package meta

import "fmt"

// Where is the model line a value was read from, kept so edits can be written back.
type Where struct {
	ModelName  string `json:"model" yaml:"model" msgpack:"model"`
	LineNumber int    `json:"line" yaml:"line" msgpack:"line"`
}

// String renders the location as model:line.
func (w Where) String() string {
	return fmt.Sprintf("%s:%d", w.ModelName, w.LineNumber)
}

// IsZero reports whether the location was never set.
func (w Where) IsZero() bool {
	return w.ModelName == "" && w.LineNumber == 0
}
