package meta

import (
	"regexp"
	"strings"
)

// Edge is a side, corner or the center of a rectangle.
type Edge int

// Edges in encoding order.
const (
	TopLeft Edge = iota
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	Center
)

var edgeNames = [...]string{
	"TOP_LEFT", "TOP", "TOP_RIGHT",
	"RIGHT", "BOTTOM_RIGHT", "BOTTOM",
	"BOTTOM_LEFT", "LEFT", "CENTER",
}

func (e Edge) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return ""
	}
	return edgeNames[e]
}

// IsSide reports whether the edge is one of the four sides.
func (e Edge) IsSide() bool {
	return e == Top || e == Bottom || e == Left || e == Right
}

// Preposition says whether an item sits inside or outside its anchor.
type Preposition int

// Prepositions.
const (
	Inside Preposition = iota
	Outside
)

func (p Preposition) String() string {
	if p == Inside {
		return "INSIDE"
	}
	return "OUTSIDE"
}

// RelativeTo names the page item a placement is anchored to.
type RelativeTo int

// RelativeNames lists the anchor keywords in encoding order.
var RelativeNames = []string{
	"PAGE", "ASSEM", "MULTI_STEP", "STEP_NUMBER", "PLI", "CALLOUT", "PAGE_NUMBER",
	"DOCUMENT_TITLE", "MODEL_ID", "DOCUMENT_AUTHOR", "PUBLISH_URL", "MODEL_DESCRIPTION",
	"PUBLISH_DESCRIPTION", "PUBLISH_COPYRIGHT", "PUBLISH_EMAIL", "LEGO_DISCLAIMER",
	"MODEL_PARTS", "APP_PLUG", "SUBMODEL_INST_COUNT", "DOCUMENT_LOGO", "DOCUMENT_COVER_IMAGE",
	"APP_PLUG_IMAGE", "PAGE_HEADER", "PAGE_FOOTER", "MODEL_CATEGORY", "SUBMODEL_DISPLAY",
	"ROTATE_ICON", "ASSEM_PART", "BOM", "PAGE_POINTER", "SINGLE_STEP", "STEP", "RANGE", "RESERVE",
	"COVER_PAGE", "ANNOTATION",
}

// Anchors used as defaults.
const (
	PageType   RelativeTo = 0
	AssemType  RelativeTo = 1
	StepNumber RelativeTo = 3
	PliType    RelativeTo = 4
)

func (r RelativeTo) String() string {
	if r < 0 || int(r) >= len(RelativeNames) {
		return ""
	}
	return RelativeNames[r]
}

func relativeTo(name string) (RelativeTo, bool) {
	for i, n := range RelativeNames {
		if n == name {
			return RelativeTo(i), true
		}
	}
	return 0, false
}

// Spot is one of the fixed placement positions, an index into the placement tables.
type Spot int

// NumSpots is the number of placement positions.
const NumSpots = 25

// Named spots used as defaults.
const (
	TopLeftOutsideCorner Spot = 0
	TopLeftInsideCorner  Spot = 6
	CenterCenter         Spot = 12
	RightTopOutside      Spot = 9
	RightOutside         Spot = 14
	BottomLeftOutside    Spot = 20
)

// placementOptions is the symbolic side of the codec; rows line up with placementDecode.
var placementOptions = [NumSpots][3]string{
	{"TOP_LEFT", "", "OUTSIDE"},
	{"TOP", "LEFT", "OUTSIDE"},
	{"TOP", "CENTER", "OUTSIDE"},
	{"TOP", "RIGHT", "OUTSIDE"},
	{"TOP_RIGHT", "", "OUTSIDE"},

	{"LEFT", "TOP", "OUTSIDE"},
	{"TOP_LEFT", "", "INSIDE"},
	{"TOP", "", "INSIDE"},
	{"TOP_RIGHT", "", "INSIDE"},
	{"RIGHT", "TOP", "OUTSIDE"},

	{"LEFT", "CENTER", "OUTSIDE"},
	{"LEFT", "", "INSIDE"},
	{"CENTER", "", "INSIDE"},
	{"RIGHT", "", "INSIDE"},
	{"RIGHT", "CENTER", "OUTSIDE"},

	{"LEFT", "BOTTOM", "OUTSIDE"},
	{"BOTTOM_LEFT", "", "INSIDE"},
	{"BOTTOM", "", "INSIDE"},
	{"BOTTOM_RIGHT", "", "INSIDE"},
	{"RIGHT", "BOTTOM", "OUTSIDE"},

	{"BOTTOM_LEFT", "", "OUTSIDE"},
	{"BOTTOM", "LEFT", "OUTSIDE"},
	{"BOTTOM", "CENTER", "OUTSIDE"},
	{"BOTTOM", "RIGHT", "OUTSIDE"},
	{"BOTTOM_RIGHT", "", "OUTSIDE"},
}

type decodedSpot struct {
	placement     Edge
	justification Edge
	preposition   Preposition
}

var placementDecode = [NumSpots]decodedSpot{
	{TopLeft, Center, Outside},
	{Top, Left, Outside},
	{Top, Center, Outside},
	{Top, Right, Outside},
	{TopRight, Center, Outside},

	{Left, Top, Outside},
	{TopLeft, Center, Inside},
	{Top, Center, Inside},
	{TopRight, Center, Inside},
	{Right, Top, Outside},

	{Left, Center, Outside},
	{Left, Center, Inside},
	{Center, Center, Inside},
	{Right, Center, Inside},
	{Right, Center, Outside},

	{Left, Bottom, Outside},
	{BottomLeft, Center, Inside},
	{Bottom, Center, Inside},
	{BottomRight, Center, Inside},
	{Right, Bottom, Outside},

	{BottomLeft, Center, Outside},
	{Bottom, Left, Outside},
	{Bottom, Center, Outside},
	{Bottom, Right, Outside},
	{BottomRight, Center, Outside},
}

// PlacementData is a decoded placement.
type PlacementData struct {
	Placement     Edge
	Justification Edge
	RelativeTo    RelativeTo
	Preposition   Preposition
	Spot          Spot
	Offsets       [2]float64
}

// Decode maps a symbolic triple to its spot. Inside placements drop a CENTER justification.
// It reports false when no row matches.
func Decode(placement, justification, preposition string) (Spot, bool) {
	if preposition == "INSIDE" && justification == "CENTER" {
		justification = ""
	}
	for i, row := range placementOptions {
		if row[0] == placement && row[1] == justification && row[2] == preposition {
			return Spot(i), true
		}
	}
	return 0, false
}

// Encode maps a spot back to its symbolic triple.
func Encode(spot Spot) (placement, justification, preposition string) {
	row := placementOptions[spot]
	return row[0], row[1], row[2]
}

// NewPlacementData builds the decoded record for a spot.
func NewPlacementData(spot Spot, rel RelativeTo) PlacementData {
	d := placementDecode[spot]
	return PlacementData{
		Placement:     d.placement,
		Justification: d.justification,
		RelativeTo:    rel,
		Preposition:   d.preposition,
		Spot:          spot,
	}
}

// Tokens renders the record in the meta-command word order.
func (p PlacementData) Tokens() []string {
	var out []string
	if p.Preposition == Outside && p.Placement.IsSide() {
		out = []string{p.Placement.String(), p.Justification.String(), p.RelativeTo.String(), p.Preposition.String()}
	} else {
		out = []string{p.Placement.String(), p.RelativeTo.String(), p.Preposition.String()}
	}
	if p.Offsets[0] != 0 || p.Offsets[1] != 0 {
		out = append(out, num(p.Offsets[0]), num(p.Offsets[1]))
	}
	return out
}

var (
	vertSideRx = regexp.MustCompile(`^(TOP|BOTTOM)$`)
	horzJustRx = regexp.MustCompile(`^(LEFT|CENTER|RIGHT)$`)
	horzSideRx = regexp.MustCompile(`^(LEFT|RIGHT)$`)
	vertJustRx = regexp.MustCompile(`^(TOP|CENTER|BOTTOM)$`)
	cornerRx   = regexp.MustCompile(`^(TOP_LEFT|TOP_RIGHT|BOTTOM_LEFT|BOTTOM_RIGHT|CENTER)$`)
	prepRx     = regexp.MustCompile(`^(INSIDE|OUTSIDE)$`)
	relativeRx = regexp.MustCompile(`^(` + strings.Join(RelativeNames, "|") + `)$`)
)

// Placement positions an item relative to another page item.
type Placement struct {
	leaf[PlacementData]
}

// NewPlacement returns a placement leaf defaulting to spot relative to rel.
func NewPlacement(spot Spot, rel RelativeTo) *Placement {
	p := &Placement{}
	p.Default.Value = NewPlacementData(spot, rel)
	return p
}

// Parse accepts OFFSET x y, or an edge phrase, anchor, preposition and optional offsets.
func (p *Placement) Parse(argv []string, index int, here Where) Rc {
	argc := len(argv)
	if index >= argc {
		return RcFailure
	}

	if argv[index] == "OFFSET" {
		if argc-index-1 == 2 {
			if v, ok := parseFloats(argv[index+1:]); ok {
				cur := p.Value()
				cur.Offsets = [2]float64{v[0], v[1]}
				p.store(cur, here)
				return RcOk
			}
		}
		return RcFailure
	}

	var placement, justification, preposition, relative string
	rc := RcFailure

	switch {
	case vertSideRx.MatchString(argv[index]):
		placement = argv[index]
		index++
		if index < argc {
			if horzJustRx.MatchString(argv[index]) {
				justification = argv[index]
				index++
				rc = RcOk
			} else if relativeRx.MatchString(argv[index]) {
				rc = RcOk
			}
		}
	case horzSideRx.MatchString(argv[index]):
		placement = argv[index]
		index++
		if index < argc {
			if vertJustRx.MatchString(argv[index]) {
				justification = argv[index]
				index++
				rc = RcOk
			} else if relativeRx.MatchString(argv[index]) {
				rc = RcOk
			}
		}
	case cornerRx.MatchString(argv[index]):
		placement = argv[index]
		index++
		rc = RcOk
	default:
		return RcFailure
	}

	if rc != RcOk || index >= argc || !relativeRx.MatchString(argv[index]) {
		return RcFailure
	}

	relative = argv[index]
	index++

	var offsets [2]float64
	if index < argc && prepRx.MatchString(argv[index]) {
		preposition = argv[index]
		index++
	}
	if argc-index == 2 {
		v, ok := parseFloats(argv[index:])
		if !ok {
			return RcFailure
		}
		offsets = [2]float64{v[0], v[1]}
		index += 2
	}
	if index != argc {
		return RcFailure
	}

	spot, ok := Decode(placement, justification, preposition)
	if !ok {
		return RcFailure
	}
	rel, _ := relativeTo(relative)

	data := NewPlacementData(spot, rel)
	data.Offsets = offsets
	p.store(data, here)
	return RcOk
}

// Format renders the placement phrase.
func (p *Placement) Format(local, global bool) string {
	return p.format(local, global, strings.Join(p.Value().Tokens(), " "))
}

// Doc lists the syntax.
func (p *Placement) Doc(prefix string) []string {
	return []string{
		prefix + " (TOP|BOTTOM) (LEFT|CENTER|RIGHT) <relative> (INSIDE|OUTSIDE) [<x> <y>]",
		prefix + " (LEFT|RIGHT) (TOP|CENTER|BOTTOM) <relative> (INSIDE|OUTSIDE) [<x> <y>]",
		prefix + " (TOP_LEFT|TOP_RIGHT|BOTTOM_LEFT|BOTTOM_RIGHT|CENTER) <relative> (INSIDE|OUTSIDE) [<x> <y>]",
		prefix + " OFFSET <x> <y>",
	}
}
