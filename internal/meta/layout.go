package meta

import (
	"fmt"
	"regexp"
	"strings"
)

// FreeFormData anchors an item to a neighbor instead of a placement spot.
type FreeFormData struct {
	Enabled       bool       `json:"enabled" yaml:"enabled" msgpack:"enabled"`
	Base          RelativeTo `json:"base" yaml:"base" msgpack:"base"`
	Justification Edge       `json:"justification" yaml:"justification" msgpack:"justification"`
}

var (
	freeFormBaseRx = regexp.MustCompile(`^(STEP_NUMBER|ASSEM|PLI|ROTATE_ICON)$`)
	freeFormJustRx = regexp.MustCompile(`^(LEFT|RIGHT|TOP|BOTTOM|CENTER)$`)
)

// FreeForm is FALSE or a neighbor plus a side.
type FreeForm struct {
	leaf[FreeFormData]
}

// NewFreeForm returns a disabled free-form leaf.
func NewFreeForm() *FreeForm {
	return &FreeForm{}
}

// Parse accepts FALSE or <item> <side>.
func (f *FreeForm) Parse(argv []string, index int, here Where) Rc {
	switch len(argv) - index {
	case 1:
		if argv[index] == "FALSE" {
			f.store(FreeFormData{}, here)
			return f.result()
		}
	case 2:
		if freeFormBaseRx.MatchString(argv[index]) && freeFormJustRx.MatchString(argv[index+1]) {
			base, _ := relativeTo(argv[index])
			f.store(FreeFormData{Enabled: true, Base: base, Justification: edgeByName(argv[index+1])}, here)
			return f.result()
		}
	}
	return RcFailure
}

// Format renders FALSE or the neighbor and side.
func (f *FreeForm) Format(local, global bool) string {
	v := f.Value()
	if !v.Enabled {
		return f.format(local, global, "FALSE")
	}
	return f.format(local, global, v.Base.String()+" "+v.Justification.String())
}

// Doc lists the syntax.
func (f *FreeForm) Doc(prefix string) []string {
	return []string{prefix + " (FALSE|(STEP_NUMBER|ASSEM|PLI|ROTATE_ICON) (LEFT|RIGHT|TOP|BOTTOM|CENTER))"}
}

// ConstrainData limits the shape of a parts list.
type ConstrainData struct {
	Kind       string  `json:"kind" yaml:"kind" msgpack:"kind"`
	Constraint float64 `json:"constraint,omitempty" yaml:"constraint,omitempty" msgpack:"constraint,omitempty"`
}

var (
	constrainShapeRx = regexp.MustCompile(`^(AREA|SQUARE)$`)
	constrainSizeRx  = regexp.MustCompile(`^(WIDTH|HEIGHT|COLS)$`)
)

// Constrain is AREA, SQUARE, or WIDTH, HEIGHT or COLS with a value.
type Constrain struct {
	leaf[ConstrainData]
}

// NewConstrain returns a constrain leaf defaulting to AREA.
func NewConstrain() *Constrain {
	c := &Constrain{}
	c.Default.Value = ConstrainData{Kind: "AREA"}
	return c
}

// Parse accepts one of the shape keywords or a size keyword and a number.
func (c *Constrain) Parse(argv []string, index int, here Where) Rc {
	switch len(argv) - index {
	case 1:
		if constrainShapeRx.MatchString(argv[index]) {
			c.store(ConstrainData{Kind: argv[index]}, here)
			return c.result()
		}
	case 2:
		v, ok := parseFloat(argv[index+1])
		if ok && constrainSizeRx.MatchString(argv[index]) {
			c.store(ConstrainData{Kind: argv[index], Constraint: v}, here)
			return c.result()
		}
	}
	return RcFailure
}

// Format renders the constraint.
func (c *Constrain) Format(local, global bool) string {
	v := c.Value()
	if constrainShapeRx.MatchString(v.Kind) {
		return c.format(local, global, v.Kind)
	}
	return c.format(local, global, v.Kind+" "+num(v.Constraint))
}

// Doc lists the syntax.
func (c *Constrain) Doc(prefix string) []string {
	return []string{prefix + " (AREA|SQUARE|(WIDTH|HEIGHT|COLS) <float>)"}
}

// Separator length kinds.
const (
	SepDefault = ""
	SepPage    = "PAGE_LENGTH"
	SepCustom  = "CUSTOM_LENGTH"
)

// SepData is a divider line between columns or rows of steps.
type SepData struct {
	Kind      string     `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Length    float64    `json:"length" yaml:"length" msgpack:"length"`
	Thickness float64    `json:"thickness" yaml:"thickness" msgpack:"thickness"`
	Color     string     `json:"color" yaml:"color" msgpack:"color"`
	Margins   [2]float64 `json:"margins" yaml:"margins" msgpack:"margins"`
}

// Sep describes a divider line.
type Sep struct {
	leaf[SepData]
}

// NewSep returns a separator leaf with the usual black hairline default.
func NewSep() *Sep {
	s := &Sep{}
	s.Default.Value = SepData{Length: -1, Thickness: 1.0 / 64, Color: "black", Margins: [2]float64{0.05, 0.05}}
	return s
}

// Parse accepts <thick> <color> <mx> <my>, optionally led by PAGE or CUSTOM <length>.
// PAGE and CUSTOM are read as PAGE_LENGTH and CUSTOM_LENGTH.
func (s *Sep) Parse(argv []string, index int, here Where) Rc {
	args := argv[index:]
	v := s.Value()
	v.Kind = SepDefault

	lengthKind := func(kw string) (string, bool) {
		switch kw {
		case "PAGE", SepPage:
			return SepPage, true
		case "CUSTOM", SepCustom:
			return SepCustom, true
		}
		return "", false
	}

	switch len(args) {
	case 4:
	case 5:
		kind, ok := lengthKind(args[0])
		if !ok {
			return RcFailure
		}
		v.Kind = kind
		args = args[1:]
	case 6:
		kind, ok := lengthKind(args[0])
		if !ok {
			return RcFailure
		}
		length, ok := parseFloat(args[1])
		if !ok {
			return RcFailure
		}
		v.Kind, v.Length = kind, length
		args = args[2:]
	default:
		return RcFailure
	}

	thick, ok := parseFloat(args[0])
	if !ok {
		return RcFailure
	}
	m, ok := parseFloats(args[2:4])
	if !ok {
		return RcFailure
	}
	v.Thickness, v.Color, v.Margins = thick, args[1], [2]float64{m[0], m[1]}
	s.store(v, here)
	return s.result()
}

// Format renders the separator with its length kind.
func (s *Sep) Format(local, global bool) string {
	v := s.Value()
	tail := num(v.Thickness) + " " + v.Color + " " + num(v.Margins[0]) + " " + num(v.Margins[1])
	switch v.Kind {
	case SepCustom:
		return s.format(local, global, SepCustom+" "+num(v.Length)+" "+tail)
	case SepPage:
		return s.format(local, global, SepPage+" "+tail)
	}
	return s.format(local, global, tail)
}

// Doc lists the syntax.
func (s *Sep) Doc(prefix string) []string {
	return []string{prefix + " [PAGE_LENGTH|CUSTOM_LENGTH <length>] <thickness> <color> <marginX> <marginY>"}
}

// ArrowHead is the tip and hafting geometry of an arrow.
type ArrowHead struct {
	leaf[[4]float64]
}

// NewArrowHead returns an arrow head leaf.
func NewArrowHead(tip, haftIn, haftOutX, haftOutY float64) *ArrowHead {
	a := &ArrowHead{}
	a.Default.Value = [4]float64{tip, haftIn, haftOutX, haftOutY}
	return a
}

// Parse requires exactly four numbers.
func (a *ArrowHead) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 4 {
		return RcFailure
	}
	v, ok := parseFloats(argv[index:])
	if !ok {
		return RcFailure
	}
	a.store([4]float64{v[0], v[1], v[2], v[3]}, here)
	return a.result()
}

// Format renders the four values.
func (a *ArrowHead) Format(local, global bool) string {
	v := a.Value()
	return a.format(local, global, num(v[0])+" "+num(v[1])+" "+num(v[2])+" "+num(v[3]))
}

// Doc lists the syntax.
func (a *ArrowHead) Doc(prefix string) []string {
	return []string{prefix + " <tipX> <haftingInsideX> <haftingOutsideX> <haftingOutsideY>"}
}

// ResolutionUnit is dots per inch or dots per centimeter.
type ResolutionUnit string

// Resolution units.
const (
	DPI  ResolutionUnit = "DPI"
	DPCM ResolutionUnit = "DPCM"
)

// ResolutionData is the document resolution.
type ResolutionData struct {
	Value float64        `json:"value" yaml:"value" msgpack:"value"`
	Unit  ResolutionUnit `json:"unit" yaml:"unit" msgpack:"unit"`
}

// Resolution sets the units every length in the document is measured in.
type Resolution struct {
	leaf[ResolutionData]
}

// NewResolution returns a resolution leaf defaulting to 150 DPI.
func NewResolution() *Resolution {
	r := &Resolution{}
	r.rc = RcResolution
	r.Default.Value = ResolutionData{Value: 150, Unit: DPI}
	return r
}

// Parse accepts <value> DPI or <value> DPCM.
func (r *Resolution) Parse(argv []string, index int, here Where) Rc {
	if len(argv)-index != 2 {
		return RcFailure
	}
	unit := ResolutionUnit(argv[index+1])
	if unit != DPI && unit != DPCM {
		return RcFailure
	}
	v, ok := parseFloat(argv[index])
	if !ok || v <= 0 {
		return RcFailure
	}
	r.store(ResolutionData{Value: v, Unit: unit}, here)
	return r.result()
}

// Format renders the value rounded to a whole number with its unit.
func (r *Resolution) Format(local, global bool) string {
	v := r.Value()
	return r.format(local, global, fmt.Sprintf("%.0f %s", v.Value, v.Unit))
}

// Doc lists the syntax.
func (r *Resolution) Doc(prefix string) []string {
	return []string{prefix + " <integer> (DPI|DPCM)"}
}

type pageSizeEntry struct {
	id                    string
	widthCm, heightCm     float64
	widthInch, heightInch float64
}

// pageSizes are the named paper sizes accepted by PAGE SIZE.
var pageSizes = []pageSizeEntry{
	{"A0", 84.1000, 118.9000, 33.1102, 46.8110},
	{"A1", 59.4000, 84.1000, 23.3858, 33.1102},
	{"A2", 42.0000, 59.4000, 16.5354, 23.3858},
	{"A3", 29.7000, 42.0000, 11.6929, 16.5354},
	{"A4", 21.0000, 29.7000, 8.2677, 11.6929},
	{"A5", 14.8000, 21.0000, 5.8268, 8.2677},
	{"A6", 10.5000, 14.8000, 4.1339, 5.8268},
	{"A7", 7.4000, 10.5000, 2.9134, 4.1339},
	{"A8", 5.2000, 7.4000, 2.0472, 2.9134},
	{"A9", 3.7000, 5.2000, 1.4567, 2.0472},
	{"A10", 2.6000, 3.7000, 1.0236, 1.4567},
	{"ArchA", 22.8600, 30.4800, 9.0000, 12.0000},
	{"ArchB", 30.4800, 45.7200, 12.0000, 18.0000},
	{"ArchC", 45.7200, 60.9600, 18.0000, 24.0000},
	{"ArchD", 60.9600, 91.4400, 24.0000, 36.0000},
	{"ArchE", 91.4400, 121.9200, 36.0000, 48.0000},
	{"ArchE1", 76.2000, 106.6800, 30.0000, 42.0000},
	{"ArchE2", 66.0400, 96.5200, 26.0000, 38.0000},
	{"ArchE3", 68.5800, 99.0600, 27.0000, 39.0000},
	{"AnsiA", 21.5900, 27.9400, 8.5000, 11.0000},
	{"AnsiB", 27.9400, 43.1800, 11.0000, 17.0000},
	{"AnsiC", 43.1800, 55.8800, 17.0000, 22.0000},
	{"AnsiD", 55.8800, 86.3600, 22.0000, 34.0000},
	{"AnsiE", 86.3600, 111.7600, 34.0000, 44.0000},
	{"B0", 100.0000, 141.4000, 39.3701, 55.6693},
	{"B1", 70.7000, 100.0000, 27.8346, 39.3701},
	{"B2", 50.0000, 70.7000, 19.6850, 27.8346},
	{"B3", 35.3000, 50.0000, 13.8976, 19.6850},
	{"B4", 25.0000, 35.3000, 9.8425, 13.8976},
	{"B5", 17.6000, 25.0000, 6.9291, 9.8425},
	{"B6", 12.5000, 17.6000, 4.9213, 6.9291},
	{"B7", 8.8000, 12.5000, 3.4646, 4.9213},
	{"B8", 6.2000, 8.8000, 2.4409, 3.4646},
	{"B9", 4.4000, 6.2000, 1.7323, 2.4409},
	{"B10", 3.1000, 4.4000, 1.2205, 1.7323},
	{"Comm10E", 10.5000, 24.1000, 4.1339, 9.4882},
	{"DLE", 11.0000, 22.0000, 4.3307, 8.6614},
	{"Executive", 18.4150, 26.6700, 7.2500, 10.5000},
	{"Folio", 21.0000, 33.0000, 8.2677, 12.9921},
	{"Ledger", 43.1800, 27.9400, 17.0000, 11.0000},
	{"Legal", 21.5900, 35.5600, 8.5000, 14.0000},
	{"Letter", 21.5900, 27.9400, 8.5000, 11.0000},
	{"Tabloid", 27.9400, 43.1800, 11.0000, 17.0000},
}

// LookupPageSize returns the dimensions of a named paper size in inches or centimeters.
func LookupPageSize(id string, unit ResolutionUnit) (w, h float64, ok bool) {
	for _, e := range pageSizes {
		if strings.EqualFold(e.id, id) {
			if unit == DPCM {
				return e.widthCm, e.heightCm, true
			}
			return e.widthInch, e.heightInch, true
		}
	}
	return 0, 0, false
}

// PageSizeData is a page width and height and the paper name, if any.
type PageSizeData struct {
	Size [2]float64 `json:"size" yaml:"size" msgpack:"size"`
	ID   string     `json:"id" yaml:"id" msgpack:"id"`
}

// PageSize is the page dimensions, given as numbers or a paper name.
type PageSize struct {
	leaf[PageSizeData]
	Min, Max   float64
	FieldWidth int
	Precision  int
	// unit resolves paper names to dimensions
	unit func() ResolutionUnit
}

// NewPageSize returns a page size leaf. unit reports the current resolution unit.
func NewPageSize(unit func() ResolutionUnit) *PageSize {
	p := &PageSize{Min: 0, Max: 1000, Precision: 4, unit: unit}
	p.rc = RcPageSize
	p.Default.Value = PageSizeData{Size: [2]float64{8.2677, 11.6929}, ID: "A4"}
	return p
}

// Parse accepts <w> <h> [<id>] or a single paper name.
func (p *PageSize) Parse(argv []string, index int, here Where) Rc {
	args := argv[index:]
	switch {
	case len(args) == 2 || len(args) == 3:
		v, ok := parseFloats(args[:2])
		if !ok {
			return RcFailure
		}
		if p.outOfRange(v[0], v[1]) {
			return RcRangeError
		}
		id := "Custom"
		if len(args) == 3 {
			id = args[2]
		}
		p.store(PageSizeData{Size: [2]float64{v[0], v[1]}, ID: id}, here)
		return p.result()
	case len(args) == 1 && !strings.EqualFold(args[0], "custom"):
		unit := DPI
		if p.unit != nil {
			unit = p.unit()
		}
		w, h, ok := LookupPageSize(args[0], unit)
		if !ok {
			return RcFailure
		}
		if p.outOfRange(w, h) {
			return RcRangeError
		}
		p.store(PageSizeData{Size: [2]float64{w, h}, ID: args[0]}, here)
		return p.result()
	}
	return RcFailure
}

func (p *PageSize) outOfRange(w, h float64) bool {
	return w < p.Min || w > p.Max || h < p.Min || h > p.Max
}

// Format renders width, height and id.
func (p *PageSize) Format(local, global bool) string {
	v := p.Value()
	id := v.ID
	if id == "" {
		id = "Custom"
	}
	return p.format(local, global,
		fixed(v.Size[0], p.FieldWidth, p.Precision)+" "+fixed(v.Size[1], p.FieldWidth, p.Precision)+" "+id)
}

// Doc lists the syntax.
func (p *PageSize) Doc(prefix string) []string {
	return []string{prefix + " <float> <float> [<page size id>]", prefix + " <page size id>"}
}
