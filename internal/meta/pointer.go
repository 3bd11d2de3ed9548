package meta

import (
	"regexp"
	"strconv"
	"strings"
)

// baseRectNames name the rectangle a page pointer's base is attached to, by spot.
var baseRectNames = map[Spot]string{
	6: "BASE_TOP_LEFT", 7: "BASE_TOP", 8: "BASE_TOP_RIGHT",
	11: "BASE_LEFT", 12: "BASE_CENTER", 13: "BASE_RIGHT",
	16: "BASE_BOTTOM_LEFT", 17: "BASE_BOTTOM", 18: "BASE_BOTTOM_RIGHT",
}

func baseRect(name string) (Spot, bool) {
	for spot, n := range baseRectNames {
		if n == name {
			return spot, true
		}
	}
	return 0, false
}

// PointerData is the geometry of one callout, divider or page pointer.
// X1,Y1 is the tip, X2,Y2 the base and the other two points are segment joints.
type PointerData struct {
	Placement Edge    `json:"placement" yaml:"placement" msgpack:"placement"`
	Loc       float64 `json:"loc" yaml:"loc" msgpack:"loc"`
	X1        float64 `json:"x1" yaml:"x1" msgpack:"x1"`
	Y1        float64 `json:"y1" yaml:"y1" msgpack:"y1"`
	X2        float64 `json:"x2" yaml:"x2" msgpack:"x2"`
	Y2        float64 `json:"y2" yaml:"y2" msgpack:"y2"`
	X3        float64 `json:"x3" yaml:"x3" msgpack:"x3"`
	Y3        float64 `json:"y3" yaml:"y3" msgpack:"y3"`
	X4        float64 `json:"x4" yaml:"x4" msgpack:"x4"`
	Y4        float64 `json:"y4" yaml:"y4" msgpack:"y4"`
	Base      float64 `json:"base" yaml:"base" msgpack:"base"`
	Segments  int     `json:"segments" yaml:"segments" msgpack:"segments"`
	BaseRect  Spot    `json:"base_rect" yaml:"base_rect" msgpack:"base_rect"`
}

const defaultPointerBase = 0.125

var (
	pointerCornerRx = regexp.MustCompile(`^(TOP_LEFT|TOP_RIGHT|BOTTOM_LEFT|BOTTOM_RIGHT)$`)
	pointerSideRx   = regexp.MustCompile(`^(TOP|BOTTOM|LEFT|RIGHT|CENTER)$`)
)

// Pointer is an arrow from a callout, divider or page item to its target.
type Pointer struct {
	leaf[PointerData]
	page bool
}

// NewPointer returns a pointer leaf answering rc. Page pointers carry a base rectangle.
func NewPointer(rc Rc, page bool) *Pointer {
	p := &Pointer{page: page}
	p.rc = rc
	p.Default.Value = PointerData{
		Placement: TopLeft,
		X1:        0.5,
		Y1:        0.5,
		X2:        0.5,
		Y2:        0.5,
		X3:        0.5,
		Y3:        0.5,
		X4:        0.5,
		Y4:        0.5,
		Base:      defaultPointerBase,
		Segments:  1,
		BaseRect:  TopLeftInsideCorner,
	}
	return p
}

// Parse accepts a corner form (<x> <y> [<base>]) or a side form (<loc> <x> <y> [<base>]),
// each optionally extended with the three extra segment points and a segment count.
func (p *Pointer) Parse(argv []string, index int, here Where) Rc {
	if index >= len(argv) {
		return RcFailure
	}
	edge := argv[index]
	vals := argv[index+1:]

	cur := p.Value()
	v := PointerData{BaseRect: cur.BaseRect, Segments: 1}

	switch {
	case pointerCornerRx.MatchString(edge):
	case pointerSideRx.MatchString(edge):
		if len(vals) == 0 {
			return RcFailure
		}
		loc, ok := parseFloat(vals[0])
		if !ok {
			return RcFailure
		}
		v.Loc = loc
		vals = vals[1:]
	default:
		return RcFailure
	}

	base := -1.0
	switch n := len(vals); {
	case n == 2 || n == 3:
		f, ok := parseFloats(vals)
		if !ok {
			return RcFailure
		}
		v.X1, v.Y1 = f[0], f[1]
		if n == 3 {
			base = f[2]
		}
	case p.page && (n == 10 || n == 11), !p.page && (n == 9 || n == 10):
		if p.page {
			spot, ok := baseRect(vals[n-1])
			if !ok {
				return RcFailure
			}
			v.BaseRect = spot
			vals = vals[:n-1]
		}
		segments, ok := parseInt(vals[len(vals)-1])
		if !ok {
			return RcFailure
		}
		f, ok := parseFloats(vals[:len(vals)-1])
		if !ok {
			return RcFailure
		}
		v.X1, v.Y1, v.X2, v.Y2 = f[0], f[1], f[2], f[3]
		v.X3, v.Y3, v.X4, v.Y4 = f[4], f[5], f[6], f[7]
		if len(f) == 9 {
			base = f[8]
		}
		v.Segments = segments
	default:
		return RcFailure
	}

	v.Placement = edgeByName(edge)
	v.Base = cur.Base
	if base > 0 {
		v.Base = base
	} else if v.Base == 0 {
		v.Base = defaultPointerBase
	}
	p.store(v, here)
	return p.result()
}

func edgeByName(name string) Edge {
	for i, n := range edgeNames {
		if n == name {
			return Edge(i)
		}
	}
	return Center
}

// Format always renders the multi-segment form.
func (p *Pointer) Format(local, global bool) string {
	v := p.Value()
	fields := []string{v.Placement.String()}
	if !(v.Placement == TopLeft || v.Placement == TopRight || v.Placement == BottomLeft || v.Placement == BottomRight) {
		fields = append(fields, fixed(v.Loc, 0, 3))
	}
	for _, f := range []float64{v.X1, v.Y1, v.X2, v.Y2, v.X3, v.Y3, v.X4, v.Y4} {
		fields = append(fields, fixed(f, 0, 3))
	}
	fields = append(fields, num(v.Base), strconv.Itoa(v.Segments))
	if p.page {
		fields = append(fields, baseRectNames[v.BaseRect])
	}
	return p.format(local, global, strings.Join(fields, " "))
}

// Doc lists the syntax.
func (p *Pointer) Doc(prefix string) []string {
	tail := ""
	if p.page {
		tail = " [<base rect>]"
	}
	return []string{
		prefix + " (TOP_LEFT|TOP_RIGHT|BOTTOM_LEFT|BOTTOM_RIGHT) <x1> <y1> [<x2> <y2> <x3> <y3> <x4> <y4>] [<base>] [<segments>]" + tail,
		prefix + " (TOP|BOTTOM|LEFT|RIGHT|CENTER) <loc> <x1> <y1> [<x2> <y2> <x3> <y3> <x4> <y4>] [<base>] [<segments>]" + tail,
	}
}

// PointerAttribKind says whether a pointer attribute styles the line or its border.
type PointerAttribKind int

// Pointer attribute kinds.
const (
	AttribLine PointerAttribKind = iota
	AttribBorder
)

// PointerAttribData styles one pointer, identified by ID.
type PointerAttribData struct {
	Kind      PointerAttribKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Line      int               `json:"line" yaml:"line" msgpack:"line"`
	Color     string            `json:"color" yaml:"color" msgpack:"color"`
	Thickness float64           `json:"thickness" yaml:"thickness" msgpack:"thickness"`
	HideTip   bool              `json:"hide_tip,omitempty" yaml:"hide_tip,omitempty" msgpack:"hide_tip,omitempty"`
	ID        int               `json:"id" yaml:"id" msgpack:"id"`
	Parent    string            `json:"parent,omitempty" yaml:"parent,omitempty" msgpack:"parent,omitempty"`
}

// PointerAttrib is the line or border style of a pointer.
type PointerAttrib struct {
	leaf[PointerAttribData]
}

// NewPointerAttrib returns a pointer attribute leaf answering rc.
func NewPointerAttrib(rc Rc) *PointerAttrib {
	a := &PointerAttrib{}
	a.rc = rc
	a.Default.Value = PointerAttribData{Line: solid, Color: "Black", Thickness: 1.0 / 32}
	return a
}

// Parse accepts LINE <line> <color> <thickness> <hide tip> <id> [<parent>]
// or BORDER <line> <color> <thickness> <id> [<parent>]. The id must be positive.
func (a *PointerAttrib) Parse(argv []string, index int, here Where) Rc {
	if index >= len(argv) {
		return RcFailure
	}
	var v PointerAttribData
	want := 0
	switch argv[index] {
	case "LINE":
		v.Kind, want = AttribLine, 6
	case "BORDER":
		v.Kind, want = AttribBorder, 5
	default:
		return RcFailure
	}
	left := len(argv) - index
	if left != want && left != want+1 {
		return RcFailure
	}

	var ok bool
	if v.Line, ok = parseInt(argv[index+1]); !ok {
		return RcFailure
	}
	v.Color = argv[index+2]
	if v.Thickness, ok = parseFloat(argv[index+3]); !ok {
		return RcFailure
	}
	next := index + 4
	if v.Kind == AttribLine {
		hide, ok := parseInt(argv[next])
		if !ok {
			return RcFailure
		}
		v.HideTip = hide != 0
		next++
	}
	if v.ID, ok = parseInt(argv[next]); !ok || v.ID <= 0 {
		return RcFailure
	}
	if next+1 < len(argv) {
		v.Parent = argv[next+1]
	}

	a.store(v, here)
	return a.result()
}

// Format renders the attribute with its id and parent.
func (a *PointerAttrib) Format(local, global bool) string {
	v := a.Value()
	fields := []string{}
	if v.Kind == AttribLine {
		hide := "0"
		if v.HideTip {
			hide = "1"
		}
		fields = append(fields, "LINE", strconv.Itoa(v.Line), v.Color, num(v.Thickness), hide)
	} else {
		fields = append(fields, "BORDER", strconv.Itoa(v.Line), v.Color, num(v.Thickness))
	}
	fields = append(fields, strconv.Itoa(v.ID))
	if v.Parent != "" {
		fields = append(fields, v.Parent)
	}
	return a.format(local, global, strings.Join(fields, " "))
}

// Doc lists the syntax.
func (a *PointerAttrib) Doc(prefix string) []string {
	return []string{prefix + " (LINE|BORDER) <line type> <color> <thickness> [<hide tip>] <id> [<parent>]"}
}
