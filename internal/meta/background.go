package meta

import (
	"fmt"
	"strconv"
	"strings"
)

// BackgroundKind selects how a page or callout background is painted.
type BackgroundKind int

// Background kinds.
const (
	BgImage BackgroundKind = iota
	BgTransparent
	BgColor
	BgGradient
	BgSubmodelColor
)

// GradientStop is one color stop of a gradient; Color is 0xAARRGGBB.
type GradientStop struct {
	Pos   float64 `json:"pos" yaml:"pos" msgpack:"pos"`
	Color uint32  `json:"color" yaml:"color" msgpack:"color"`
}

// Gradient describes a gradient fill.
type Gradient struct {
	Mode   int            `json:"mode" yaml:"mode" msgpack:"mode"`
	Spread int            `json:"spread" yaml:"spread" msgpack:"spread"`
	Type   int            `json:"type" yaml:"type" msgpack:"type"`
	Size   [2]float64     `json:"size" yaml:"size" msgpack:"size"`
	Angle  float64        `json:"angle" yaml:"angle" msgpack:"angle"`
	Points [][2]float64   `json:"points" yaml:"points" msgpack:"points"`
	Stops  []GradientStop `json:"stops" yaml:"stops" msgpack:"stops"`
}

// BackgroundData is the value of a BACKGROUND setting.
type BackgroundData struct {
	Kind     BackgroundKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Stretch  bool           `json:"stretch,omitempty" yaml:"stretch,omitempty" msgpack:"stretch,omitempty"`
	Gradient Gradient       `json:"gradient" yaml:"gradient" msgpack:"gradient"`
}

// Background is a transparent, colored, gradient or picture fill.
type Background struct {
	leaf[BackgroundData]
}

// NewBackground returns a background leaf with the given default.
func NewBackground(v BackgroundData) *Background {
	b := &Background{}
	b.Default.Value = v
	return b
}

// Parse selects the form by the number of remaining tokens.
func (b *Background) Parse(argv []string, index int, here Where) Rc {
	args := argv[index:]
	var v BackgroundData
	ok := false

	switch len(args) {
	case 1:
		ok = true
		switch args[0] {
		case "TRANS", "TRANSPARENT":
			v.Kind = BgTransparent
		case "SUBMODEL_BACKGROUND_COLOR":
			v.Kind = BgSubmodelColor
		default:
			v = BackgroundData{Kind: BgImage, Text: args[0]}
		}
	case 2:
		switch args[0] {
		case "COLOR":
			v = BackgroundData{Kind: BgColor, Text: args[1]}
			ok = true
		case "PICTURE":
			v = BackgroundData{Kind: BgImage, Text: args[1]}
			ok = true
		}
	case 3:
		if args[0] == "PICTURE" && args[2] == "STRETCH" {
			v = BackgroundData{Kind: BgImage, Text: args[1], Stretch: true}
			ok = true
		}
	case 9:
		if args[0] == "GRADIENT" {
			var g Gradient
			if g, ok = parseGradient(args[1:]); ok {
				v = BackgroundData{Kind: BgGradient, Gradient: g}
			}
		}
	}

	if !ok {
		return RcFailure
	}
	b.store(v, here)
	return b.result()
}

func parseGradient(args []string) (Gradient, bool) {
	var g Gradient
	ints := [3]*int{&g.Mode, &g.Spread, &g.Type}
	for i, p := range ints {
		v, ok := parseInt(args[i])
		if !ok {
			return g, false
		}
		*p = v
	}
	f, ok := parseFloats(args[3:6])
	if !ok {
		return g, false
	}
	g.Size = [2]float64{f[0], f[1]}
	g.Angle = f[2]

	for _, pt := range strings.Split(args[6], "|") {
		x, y, found := strings.Cut(pt, ",")
		if !found {
			return g, false
		}
		xy, ok := parseFloats([]string{x, y})
		if !ok {
			return g, false
		}
		g.Points = append(g.Points, [2]float64{xy[0], xy[1]})
	}

	for _, st := range strings.Split(args[7], "|") {
		pos, color, found := strings.Cut(st, ",")
		if !found {
			return g, false
		}
		p, ok := parseFloat(pos)
		if !ok {
			return g, false
		}
		c, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(color), "0x"), 16, 32)
		if err != nil {
			return g, false
		}
		g.Stops = append(g.Stops, GradientStop{Pos: p, Color: uint32(c)})
	}
	return g, true
}

// Format renders the canonical form of the current kind.
func (b *Background) Format(local, global bool) string {
	v := b.Value()
	var s string
	switch v.Kind {
	case BgTransparent:
		s = "TRANSPARENT"
	case BgSubmodelColor:
		s = "SUBMODEL_BACKGROUND_COLOR"
	case BgColor:
		s = `COLOR "` + v.Text + `"`
	case BgGradient:
		g := v.Gradient
		points := make([]string, len(g.Points))
		for i, p := range g.Points {
			points[i] = num(p[0]) + "," + num(p[1])
		}
		stops := make([]string, len(g.Stops))
		for i, st := range g.Stops {
			stops[i] = fmt.Sprintf("%s,0x%08x", num(st.Pos), st.Color)
		}
		s = fmt.Sprintf(`GRADIENT %d %d %d %s %s %s "%s" "%s"`,
			g.Mode, g.Spread, g.Type, num(g.Size[0]), num(g.Size[1]), num(g.Angle),
			strings.Join(points, "|"), strings.Join(stops, "|"))
	case BgImage:
		s = `PICTURE "` + v.Text + `"`
		if v.Stretch {
			s += " STRETCH"
		}
	}
	return b.format(local, global, s)
}

// Doc lists the syntax.
func (b *Background) Doc(prefix string) []string {
	return []string{prefix + ` (TRANSPARENT|SUBMODEL_BACKGROUND_COLOR|COLOR <"color">|` +
		`GRADIENT <mode spread type size[0] size[1] angle "points" "stops">|PICTURE <"file"> [STRETCH])`}
}
