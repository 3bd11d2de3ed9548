package meta

import "fmt"

// LineResult is the outcome of interpreting one line of a model.
type LineResult struct {
	Here Where    `json:"where" yaml:"where"`
	Text string   `json:"text" yaml:"text"`
	Rc   Rc       `json:"rc" yaml:"rc"`
	Set  []string `json:"set,omitempty" yaml:"set,omitempty"`
}

// ParseLine interprets one line at here. Set lists the canonical form of each value
// the line wrote.
func (m *Meta) ParseLine(line string, here Where, reportErrors bool) LineResult {
	res := LineResult{Here: here, Text: line, Rc: m.Parse(line, here, reportErrors)}
	for _, n := range m.Touched(here) {
		if isAction(n) {
			continue
		}
		res.Set = append(res.Set, Restate(n))
	}
	return res
}

// ParseModel interprets every line of a model in order, numbering lines from zero.
// Local overrides end with the step, step group or callout they were set in, and
// none outlives the model.
func (m *Meta) ParseModel(model string, lines []string, reportErrors bool) []LineResult {
	results := make([]LineResult, 0, len(lines))
	for i, line := range lines {
		res := m.ParseLine(line, Where{ModelName: model, LineNumber: i}, reportErrors)
		results = append(results, res)
		if endsScope(res.Rc) {
			m.Pop()
		}
	}
	m.Pop()
	return results
}

func endsScope(rc Rc) bool {
	switch rc {
	case RcStep, RcRotStep, RcStepGroupEnd, RcCalloutEnd:
		return true
	}
	return false
}

// MarshalText renders the code by name.
func (rc Rc) MarshalText() ([]byte, error) {
	return []byte(rc.String()), nil
}

// UnmarshalText accepts a code name.
func (rc *Rc) UnmarshalText(text []byte) error {
	for code, name := range rcNames {
		if name == string(text) {
			*rc = code
			return nil
		}
	}
	return fmt.Errorf("unknown action code %q", text)
}
