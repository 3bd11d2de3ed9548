package meta

import (
	"regexp"
	"strings"
)

// RotStepData is a rotation applied to the assembly view from this step on.
// An empty Type means the rotation was ended.
type RotStepData struct {
	Rots [3]float64 `json:"rots" yaml:"rots" msgpack:"rots"`
	Type string     `json:"type" yaml:"type" msgpack:"type"`
}

var rotStepTypeRx = regexp.MustCompile(`^(ABS|REL|ADD)$`)

// RotStep is a step boundary that also rotates the view.
type RotStep struct {
	leaf[RotStepData]
}

// NewRotStep returns a ROTSTEP leaf.
func NewRotStep() *RotStep {
	r := &RotStep{}
	r.rc = RcRotStep
	return r
}

// Parse accepts <x> <y> <z> (ABS|REL|ADD) or END.
func (r *RotStep) Parse(argv []string, index int, here Where) Rc {
	switch len(argv) - index {
	case 4:
		v, ok := parseFloats(argv[index : index+3])
		if !ok || !rotStepTypeRx.MatchString(argv[index+3]) {
			return RcFailure
		}
		r.Cell.Default = Slot[RotStepData]{Value: RotStepData{Rots: [3]float64{v[0], v[1], v[2]}, Type: argv[index+3]}, Here: here}
		return r.result()
	case 1:
		if argv[index] == "END" {
			r.Cell.Default = Slot[RotStepData]{Here: here}
			return r.result()
		}
	}
	return RcFailure
}

// Format renders the rotation and its type.
func (r *RotStep) Format(local, global bool) string {
	v := r.Value()
	if v.Type == "" {
		return r.format(local, global, "END")
	}
	return r.format(local, global, num(v.Rots[0])+" "+num(v.Rots[1])+" "+num(v.Rots[2])+" "+v.Type)
}

// Doc lists the syntax.
func (r *RotStep) Doc(prefix string) []string {
	return []string{prefix + " <rotX> <rotY> <rotZ> (ABS|REL|ADD)", prefix + " END"}
}

// BufExchgData names a buffer and what was done with it.
type BufExchgData struct {
	Buffer string `json:"buffer" yaml:"buffer" msgpack:"buffer"`
	Type   string `json:"type" yaml:"type" msgpack:"type"`
}

var (
	bufferNameRx = regexp.MustCompile(`^[A-Z]$`)
	bufferOpRx   = regexp.MustCompile(`^(STORE|RETRIEVE)$`)
)

// BufExchg stores or retrieves the model state in a lettered buffer.
type BufExchg struct {
	leaf[BufExchgData]
}

// NewBufExchg returns a BUFEXCHG leaf.
func NewBufExchg() *BufExchg {
	return &BufExchg{}
}

// Parse accepts <A-Z> (STORE|RETRIEVE).
func (b *BufExchg) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 2 || !bufferNameRx.MatchString(argv[index]) || !bufferOpRx.MatchString(argv[index+1]) {
		return RcFailure
	}
	b.Cell.Default = Slot[BufExchgData]{Value: BufExchgData{Buffer: argv[index], Type: argv[index+1]}, Here: here}
	if argv[index+1] == "RETRIEVE" {
		return RcBufferLoad
	}
	return RcBufferStore
}

// Format renders the buffer and operation.
func (b *BufExchg) Format(local, global bool) string {
	v := b.Value()
	return b.format(local, global, v.Buffer+" "+v.Type)
}

// Doc lists the syntax.
func (b *BufExchg) Doc(prefix string) []string {
	return []string{prefix + " <bufferName> (STORE|RETRIEVE)"}
}

// SubData is a parts list substitution: the part shown and, optionally, its color.
type SubData struct {
	Part  string `json:"part" yaml:"part" msgpack:"part"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" msgpack:"color,omitempty"`
}

// Sub replaces the next part in the parts list with another part.
type Sub struct {
	leaf[SubData]
}

// NewSub returns a PLI BEGIN SUB leaf.
func NewSub() *Sub {
	return &Sub{}
}

// Parse accepts <part> or <part> <color>.
func (s *Sub) Parse(argv []string, index int, here Where) Rc {
	switch len(argv) - index {
	case 1:
		s.Cell.Default = Slot[SubData]{Value: SubData{Part: argv[index]}, Here: here}
		return RcPliBeginSub1
	case 2:
		s.Cell.Default = Slot[SubData]{Value: SubData{Part: argv[index], Color: argv[index+1]}, Here: here}
		return RcPliBeginSub2
	}
	return RcFailure
}

// Format renders the part, or the part and color in the order they are written.
func (s *Sub) Format(local, global bool) string {
	v := s.Value()
	if v.Color == "" {
		return s.format(local, global, v.Part)
	}
	return s.format(local, global, v.Part+" "+v.Color)
}

// Doc lists the syntax.
func (s *Sub) Doc(prefix string) []string {
	return []string{prefix + " <part> <color>", prefix + " <part>"}
}

// CalloutMode is how a callout shows its submodel.
type CalloutMode string

// Callout modes.
const (
	Unassembled CalloutMode = ""
	Assembled   CalloutMode = "ASSEMBLED"
	Rotated     CalloutMode = "ROTATED"
)

// CalloutBegin opens a callout.
type CalloutBegin struct {
	leaf[CalloutMode]
}

// NewCalloutBegin returns a CALLOUT BEGIN leaf.
func NewCalloutBegin() *CalloutBegin {
	c := &CalloutBegin{}
	c.rc = RcCalloutBegin
	return c
}

// Parse accepts no argument, ASSEMBLED or ROTATED.
func (c *CalloutBegin) Parse(argv []string, index int, here Where) Rc {
	var mode CalloutMode
	switch len(argv) - index {
	case 0:
		mode = Unassembled
	case 1:
		switch argv[index] {
		case "ASSEMBLED":
			mode = Assembled
		case "ROTATED":
			mode = Rotated
		default:
			return RcFailure
		}
	default:
		return RcFailure
	}
	c.Cell.Default = Slot[CalloutMode]{Value: mode, Here: here}
	return c.result()
}

// Format renders the keyword path and mode.
func (c *CalloutBegin) Format(local, global bool) string {
	return strings.TrimRight(c.format(local, global, string(c.Value())), " ")
}

// Doc lists the syntax.
func (c *CalloutBegin) Doc(prefix string) []string {
	return []string{prefix, prefix + " ASSEMBLED", prefix + " ROTATED"}
}
