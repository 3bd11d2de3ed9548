package meta

import (
	"regexp"
	"strconv"
	"strings"
)

// Action is a keyword whose only effect is its action code, such as STEP or CLEAR.
type Action struct {
	leaf[struct{}]
}

// NewAction returns an action leaf.
func NewAction(rc Rc) *Action {
	a := &Action{}
	a.rc = rc
	return a
}

// Parse accepts trailing tokens and records the location.
func (a *Action) Parse(argv []string, index int, here Where) Rc {
	a.store(struct{}{}, here)
	return a.rc
}

// Format renders the bare keyword path.
func (a *Action) Format(local, global bool) string {
	return strings.TrimRight(a.format(local, global, ""), " ")
}

// Doc lists the keyword path.
func (a *Action) Doc(prefix string) []string {
	return []string{prefix}
}

// NoStep is an action that rejects trailing tokens.
type NoStep struct {
	Action
}

func newNoStep() *NoStep {
	n := &NoStep{}
	n.rc = RcNoStep
	return n
}

// Parse fails if anything follows the keyword.
func (n *NoStep) Parse(argv []string, index int, here Where) Rc {
	if index != len(argv) {
		return RcFailure
	}
	n.store(struct{}{}, here)
	return n.rc
}

// Int is a bounded whole number.
type Int struct {
	leaf[int]
	Min, Max int
}

// NewInt returns an integer leaf bounded by [min,max].
func NewInt(value, min, max int) *Int {
	i := &Int{Min: min, Max: max}
	i.Default.Value = value
	return i
}

// Parse requires exactly one integer token.
func (i *Int) Parse(argv []string, index int, here Where) Rc {
	if index != len(argv)-1 {
		return RcFailure
	}
	v, ok := parseInt(argv[index])
	if !ok {
		return RcFailure
	}
	if v < i.Min || v > i.Max {
		return RcRangeError
	}
	i.store(v, here)
	return i.result()
}

// Format renders the integer.
func (i *Int) Format(local, global bool) string {
	return i.format(local, global, strconv.Itoa(i.Value()))
}

// Doc lists the syntax.
func (i *Int) Doc(prefix string) []string {
	return []string{prefix + " <integer>"}
}

// Float is a bounded floating point number rendered with a fixed precision.
type Float struct {
	leaf[float64]
	Min, Max   float64
	FieldWidth int
	Precision  int
}

// NewFloat returns a float leaf bounded by [min,max].
func NewFloat(value, min, max float64, precision int) *Float {
	f := &Float{Min: min, Max: max, Precision: precision}
	f.Default.Value = value
	return f
}

// Parse requires exactly one numeric token inside the range.
func (f *Float) Parse(argv []string, index int, here Where) Rc {
	if index != len(argv)-1 {
		return RcFailure
	}
	v, ok := parseFloat(argv[index])
	if !ok {
		return RcFailure
	}
	if v < f.Min || v > f.Max {
		return RcRangeError
	}
	f.store(v, here)
	return f.result()
}

// Format renders the value with the configured width and precision.
func (f *Float) Format(local, global bool) string {
	return f.format(local, global, fixed(f.Value(), f.FieldWidth, f.Precision))
}

// Doc lists the syntax.
func (f *Float) Doc(prefix string) []string {
	return []string{prefix + " <float>"}
}

// FloatPair is two bounded floats, such as margins or camera angles.
type FloatPair struct {
	leaf[[2]float64]
	Min, Max   float64
	FieldWidth int
	Precision  int
}

// NewFloatPair returns a pair leaf bounded by [min,max] on both values.
func NewFloatPair(v0, v1, min, max float64, precision int) *FloatPair {
	p := &FloatPair{Min: min, Max: max, Precision: precision}
	p.Default.Value = [2]float64{v0, v1}
	return p
}

// Parse requires exactly two numeric tokens.
func (p *FloatPair) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 2 {
		return RcFailure
	}
	v, ok := parseFloats(argv[index:])
	if !ok {
		return RcFailure
	}
	if v[0] < p.Min || v[0] > p.Max || v[1] < p.Min || v[1] > p.Max {
		return RcRangeError
	}
	p.store([2]float64{v[0], v[1]}, here)
	return p.result()
}

// Format renders both values.
func (p *FloatPair) Format(local, global bool) string {
	v := p.Value()
	return p.format(local, global,
		fixed(v[0], p.FieldWidth, p.Precision)+" "+fixed(v[1], p.FieldWidth, p.Precision))
}

// Doc lists the syntax.
func (p *FloatPair) Doc(prefix string) []string {
	return []string{prefix + " <float> <float>"}
}

// String is a single text value, usually written quoted.
type String struct {
	leaf[string]
	Delim string
}

// NewString returns a quoted string leaf.
func NewString(value string) *String {
	s := &String{Delim: `"`}
	s.Default.Value = value
	return s
}

// Parse requires exactly one token and un-escapes embedded quotes.
func (s *String) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 1 {
		return RcFailure
	}
	s.store(strings.ReplaceAll(argv[index], `\"`, `"`), here)
	return s.result()
}

// Format renders the value between delimiters.
func (s *String) Format(local, global bool) string {
	v := s.Value()
	if s.Delim == `"` {
		v = strings.ReplaceAll(v, `"`, `\"`)
	}
	return s.format(local, global, s.Delim+v+s.Delim)
}

// Doc lists the syntax.
func (s *String) Doc(prefix string) []string {
	return []string{prefix + ` <"string">`}
}

// StringList takes every remaining token.
type StringList struct {
	leaf[[]string]
	Delim string
}

// NewStringList returns a quoted list leaf.
func NewStringList(values ...string) *StringList {
	s := &StringList{Delim: `"`}
	s.Default.Value = values
	return s
}

// Parse stores all remaining tokens in order.
func (s *StringList) Parse(argv []string, index int, here Where) Rc {
	values := append([]string(nil), argv[index:]...)
	s.store(values, here)
	return s.result()
}

// Format renders each item delimited and blank separated.
func (s *StringList) Format(local, global bool) string {
	var sb strings.Builder
	for _, v := range s.Value() {
		sb.WriteString(s.Delim + v + s.Delim + " ")
	}
	return s.format(local, global, strings.TrimRight(sb.String(), " "))
}

// Doc lists the syntax.
func (s *StringList) Doc(prefix string) []string {
	return []string{prefix + ` <"string"> <"string"> .....`}
}

var boolRx = regexp.MustCompile(`^(TRUE|FALSE)$`)

// Bool is TRUE or FALSE.
type Bool struct {
	leaf[bool]
}

// NewBool returns a boolean leaf.
func NewBool(value bool) *Bool {
	b := &Bool{}
	b.Default.Value = value
	return b
}

// Parse requires exactly TRUE or FALSE.
func (b *Bool) Parse(argv []string, index int, here Where) Rc {
	if index != len(argv)-1 || !boolRx.MatchString(argv[index]) {
		return RcFailure
	}
	b.store(argv[index] == "TRUE", here)
	return b.result()
}

// Format renders TRUE or FALSE.
func (b *Bool) Format(local, global bool) string {
	v := "FALSE"
	if b.Value() {
		v = "TRUE"
	}
	return b.format(local, global, v)
}

// Doc lists the syntax.
func (b *Bool) Doc(prefix string) []string {
	return []string{prefix + " <TRUE|FALSE>"}
}

// Choice is one keyword out of a fixed set, such as ALLOC or ARROW_END.
type Choice struct {
	leaf[string]
	Options []string
}

// NewChoice returns a leaf accepting one of options, defaulting to value.
func NewChoice(value string, options ...string) *Choice {
	c := &Choice{Options: options}
	c.Default.Value = value
	return c
}

// Parse requires exactly one of the options.
func (c *Choice) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 1 {
		return RcFailure
	}
	for _, opt := range c.Options {
		if argv[index] == opt {
			c.store(opt, here)
			return c.result()
		}
	}
	return RcFailure
}

// Format renders the chosen keyword.
func (c *Choice) Format(local, global bool) string {
	return c.format(local, global, c.Value())
}

// Doc lists the syntax.
func (c *Choice) Doc(prefix string) []string {
	return []string{prefix + " (" + strings.Join(c.Options, "|") + ")"}
}
