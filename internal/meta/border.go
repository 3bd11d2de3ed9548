package meta

import "strconv"

// BorderKind is the corner style of a border.
type BorderKind int

// Border kinds.
const (
	BdrNone BorderKind = iota
	BdrSquare
	BdrRound
)

// BorderData is the value of a BORDER setting.
type BorderData struct {
	Kind      BorderKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Line      int        `json:"line" yaml:"line" msgpack:"line"`
	Color     string     `json:"color" yaml:"color" msgpack:"color"`
	Thickness float64    `json:"thickness" yaml:"thickness" msgpack:"thickness"`
	Radius    int        `json:"radius" yaml:"radius" msgpack:"radius"`
	Hidden    bool       `json:"hidden,omitempty" yaml:"hidden,omitempty" msgpack:"hidden,omitempty"`
	Margins   [2]float64 `json:"margins" yaml:"margins" msgpack:"margins"`
}

// solid is the line style assumed by the older form that omits the line type.
const solid = 1

// Border describes a frame drawn around a page item.
type Border struct {
	leaf[BorderData]
}

// NewBorder returns a border leaf with the given default.
func NewBorder(v BorderData) *Border {
	b := &Border{}
	b.Default.Value = v
	return b
}

// Parse accepts NONE, HIDDEN, SQUARE or ROUND, with or without a leading line type,
// followed by an optional MARGINS x y.
func (b *Border) Parse(argv []string, index int, here Where) Rc {
	argc := len(argv)
	if index >= argc {
		return RcFailure
	}
	newFormat := false
	if index+1 < argc {
		_, newFormat = parseInt(argv[index+1])
	}
	left := argc - index

	v := b.Value()
	ok := false

	switch kw := argv[index]; {
	case kw == "NONE":
		v.Kind = BdrNone
		v.Hidden = false
		v.Line = solid
		index++
		if newFormat {
			v.Line, _ = parseInt(argv[index])
			index++
		}
		ok = true
	case (kw == "HIDDEN" || kw == "SQUARE") && newFormat && left >= 4:
		line, _ := parseInt(argv[index+1])
		if t, good := parseFloat(argv[index+3]); good {
			v.Kind, v.Line, v.Color, v.Thickness = BdrSquare, line, argv[index+2], t
			v.Hidden = kw == "HIDDEN"
			index += 4
			ok = true
		}
	case (kw == "HIDDEN" || kw == "SQUARE") && left >= 3:
		if t, good := parseFloat(argv[index+2]); good {
			v.Kind, v.Line, v.Color, v.Thickness = BdrSquare, solid, argv[index+1], t
			v.Hidden = kw == "HIDDEN"
			index += 3
			ok = true
		}
	case kw == "ROUND" && newFormat && left >= 5:
		line, _ := parseInt(argv[index+1])
		t, good := parseFloat(argv[index+3])
		r, goodR := parseInt(argv[index+4])
		if good && goodR {
			v.Kind, v.Line, v.Color, v.Thickness, v.Radius = BdrRound, line, argv[index+2], t, r
			v.Hidden = false
			index += 5
			ok = true
		}
	case kw == "ROUND" && left >= 4:
		t, good := parseFloat(argv[index+2])
		r, goodR := parseInt(argv[index+3])
		if good && goodR {
			v.Kind, v.Line, v.Color, v.Thickness, v.Radius = BdrRound, solid, argv[index+1], t, r
			v.Hidden = false
			index += 4
			ok = true
		}
	}
	if !ok {
		return RcFailure
	}

	if argc-index == 3 {
		if argv[index] != "MARGINS" {
			return RcFailure
		}
		m, good := parseFloats(argv[index+1:])
		if !good {
			return RcFailure
		}
		v.Margins = [2]float64{m[0], m[1]}
	}

	b.store(v, here)
	return b.result()
}

// Format renders the border with its margins.
func (b *Border) Format(local, global bool) string {
	v := b.Value()
	var s string
	switch v.Kind {
	case BdrNone:
		s = "NONE " + strconv.Itoa(v.Line)
	case BdrSquare:
		kw := "SQUARE"
		if v.Hidden {
			kw = "HIDDEN"
		}
		s = kw + " " + strconv.Itoa(v.Line) + " " + v.Color + " " + num(v.Thickness)
	case BdrRound:
		s = "ROUND " + strconv.Itoa(v.Line) + " " + v.Color + " " + num(v.Thickness) + " " + strconv.Itoa(v.Radius)
	}
	s += " MARGINS " + num(v.Margins[0]) + " " + num(v.Margins[1])
	return b.format(local, global, s)
}

// Doc lists the syntax.
func (b *Border) Doc(prefix string) []string {
	return []string{prefix + " (NONE <line>|HIDDEN <line> <color> <thickness>|SQUARE <line> <color> <thickness>|" +
		"ROUND <line> <color> <thickness> <radius>) MARGINS <x> <y>"}
}
