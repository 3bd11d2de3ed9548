package meta

import "strings"

// InsertKind is the kind of item an INSERT places on the page.
type InsertKind int

// Insert kinds.
const (
	InsertPicture InsertKind = iota
	InsertText
	InsertArrow
	InsertBom
	InsertRotateIcon
)

// InsertData is one inserted page item.
type InsertData struct {
	Kind      InsertKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Picture   string     `json:"picture,omitempty" yaml:"picture,omitempty" msgpack:"picture,omitempty"`
	Scale     float64    `json:"scale,omitempty" yaml:"scale,omitempty" msgpack:"scale,omitempty"`
	Text      string     `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	TextFont  string     `json:"text_font,omitempty" yaml:"text_font,omitempty" msgpack:"text_font,omitempty"`
	TextColor string     `json:"text_color,omitempty" yaml:"text_color,omitempty" msgpack:"text_color,omitempty"`
	// Arrow is head x,y, tail x,y, hafting depth and hafting tip x,y.
	Arrow   [7]float64 `json:"arrow" yaml:"arrow" msgpack:"arrow"`
	Offsets [2]float64 `json:"offsets" yaml:"offsets" msgpack:"offsets"`
}

// Insert places a picture, text, arrow, parts list or rotate icon, or asks for a new page.
// It is never overridden locally: each INSERT line replaces the last one.
type Insert struct {
	leaf[InsertData]
}

// NewInsert returns an insert leaf.
func NewInsert() *Insert {
	i := &Insert{}
	i.rc = RcInsert
	return i
}

// Parse dispatches on the insert kind and accepts a trailing OFFSET x y.
func (in *Insert) Parse(argv []string, index int, here Where) Rc {
	left := len(argv) - index
	if left <= 0 {
		return RcFailure
	}
	switch {
	case left == 1 && argv[index] == "PAGE":
		return RcInsertPage
	case left == 1 && argv[index] == "MODEL":
		return RcInsertFinalModel
	case (left == 1 || left == 2) && argv[index] == "COVER_PAGE":
		return RcInsertCoverPage
	}

	var v InsertData
	switch kw := argv[index]; {
	case kw == "PICTURE" && left > 1:
		v.Kind = InsertPicture
		v.Picture = argv[index+1]
		index += 2
		if len(argv)-index >= 2 && argv[index] == "SCALE" {
			scale, ok := parseFloat(argv[index+1])
			if !ok {
				return RcFailure
			}
			v.Scale = scale
			index += 2
		}
	case kw == "TEXT" && left > 3:
		v.Kind = InsertText
		v.Text, v.TextFont, v.TextColor = argv[index+1], argv[index+2], argv[index+3]
		index += 4
	case kw == "ROTATE_ICON":
		v.Kind = InsertRotateIcon
		index++
	case kw == "ARROW" && left >= 8:
		f, ok := parseFloats(argv[index+1 : index+8])
		if !ok {
			return RcFailure
		}
		v.Kind = InsertArrow
		copy(v.Arrow[:], f)
		index += 8
	case kw == "BOM":
		v.Kind = InsertBom
		index++
	default:
		return RcFailure
	}

	switch left := len(argv) - index; {
	case left == 3 && argv[index] == "OFFSET":
		off, ok := parseFloats(argv[index+1:])
		if !ok {
			return RcFailure
		}
		v.Offsets = [2]float64{off[0], off[1]}
	case left > 0:
		return RcFailure
	}

	in.Cell.Default = Slot[InsertData]{Value: v, Here: here}
	return in.result()
}

// Format renders the last insert.
func (in *Insert) Format(local, global bool) string {
	v := in.Value()
	var fields []string
	switch v.Kind {
	case InsertPicture:
		fields = append(fields, "PICTURE", `"`+v.Picture+`"`)
		if v.Scale != 0 {
			fields = append(fields, "SCALE", num(v.Scale))
		}
	case InsertText:
		fields = append(fields, "TEXT", `"`+v.Text+`"`, `"`+v.TextFont+`"`, `"`+v.TextColor+`"`)
	case InsertRotateIcon:
		fields = append(fields, "ROTATE_ICON")
	case InsertArrow:
		fields = append(fields, "ARROW")
		for _, f := range v.Arrow {
			fields = append(fields, num(f))
		}
	case InsertBom:
		fields = append(fields, "BOM")
	}
	if v.Offsets[0] != 0 || v.Offsets[1] != 0 {
		fields = append(fields, "OFFSET", num(v.Offsets[0]), num(v.Offsets[1]))
	}
	return in.format(local, global, strings.Join(fields, " "))
}

// Doc lists the syntax.
func (in *Insert) Doc(prefix string) []string {
	return []string{
		prefix + " (PAGE|MODEL|COVER_PAGE [FRONT|BACK])",
		prefix + ` PICTURE <"file"> [SCALE <float>] [OFFSET <x> <y>]`,
		prefix + ` TEXT <"text"> <"font"> <"color"> [OFFSET <x> <y>]`,
		prefix + " ARROW <headX> <headY> <tailX> <tailY> <haftDepth> <haftTipX> <haftTipY> [OFFSET <x> <y>]",
		prefix + " (BOM|ROTATE_ICON) [OFFSET <x> <y>]",
	}
}
