package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpubmeta/internal/parser"
)

type leafCase struct {
	name string
	node func() Node
	argv []string
	rc   Rc
	want string
}

func fields(s string) []string {
	return strings.Fields(s)
}

func runLeafCases(t *testing.T, tests []leafCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.node()
			rc := n.Parse(tt.argv, 0, here)
			require.Equal(t, tt.rc, rc)
			if !rc.IsError() {
				assert.Equal(t, tt.want, n.Format(false, false))

				// the rendered value parses back to the same rendering
				again := tt.node()
				require.Equal(t, rc, again.Parse(splitValue(tt.want), 0, here))
				assert.Equal(t, tt.want, again.Format(false, false))
			}
		})
	}
}

// splitValue tokenizes a rendered value the way a meta line is tokenized.
func splitValue(s string) []string {
	argv, err := parser.Split("0 " + s)
	if err != nil {
		panic(err)
	}
	return argv[1:]
}

func TestScalarLeaves(t *testing.T) {
	runLeafCases(t, []leafCase{
		{"int", func() Node { return NewInt(5, 0, 10) }, fields("7"), RcOk, "7"},
		{"int out of range", func() Node { return NewInt(5, 0, 10) }, fields("11"), RcRangeError, ""},
		{"int not a number", func() Node { return NewInt(5, 0, 10) }, fields("seven"), RcFailure, ""},
		{"int extra token", func() Node { return NewInt(5, 0, 10) }, fields("7 8"), RcFailure, ""},
		{"float", func() Node { return NewFloat(1, 0, 100, 2) }, fields("12.5"), RcOk, "12.50"},
		{"float below min", func() Node { return NewFloat(1, 0, 100, 2) }, fields("-1"), RcRangeError, ""},
		{"float nan", func() Node { return NewFloat(1, 0, 100, 2) }, fields("NaN"), RcFailure, ""},
		{"float inf", func() Node { return NewFloat(1, 0, 100, 2) }, fields("+Inf"), RcFailure, ""},
		{"float pair", func() Node { return NewFloatPair(0, 0, 0, 100, 4) }, fields("0.05 0.1"), RcOk, "0.0500 0.1000"},
		{"float pair one value", func() Node { return NewFloatPair(0, 0, 0, 100, 4) }, fields("0.05"), RcFailure, ""},
		{"float pair out of range", func() Node { return NewFloatPair(0, 0, 0, 100, 4) }, fields("0.05 101"), RcRangeError, ""},
		{"float pair nan", func() Node { return NewFloatPair(0, 0, 0, 100, 4) }, fields("0.05 nan"), RcFailure, ""},
		{"string", func() Node { return NewString("") }, []string{"Arial,24"}, RcOk, `"Arial,24"`},
		{"string escaped quote", func() Node { return NewString("") }, []string{`say \"hi\"`}, RcOk, `"say \"hi\""`},
		{"string two tokens", func() Node { return NewString("") }, fields("a b"), RcFailure, ""},
		{"string list", func() Node { return NewStringList() }, fields("#FFFFE0 #E0E0E0"), RcOk, `"#FFFFE0" "#E0E0E0"`},
		{"bool", func() Node { return NewBool(false) }, fields("TRUE"), RcOk, "TRUE"},
		{"bool lowercase", func() Node { return NewBool(false) }, fields("true"), RcFailure, ""},
		{"choice", func() Node { return NewChoice("VERTICAL", "HORIZONTAL", "VERTICAL") }, fields("HORIZONTAL"), RcOk, "HORIZONTAL"},
		{"choice unknown", func() Node { return NewChoice("VERTICAL", "HORIZONTAL", "VERTICAL") }, fields("DIAGONAL"), RcFailure, ""},
		{"constrain shape", func() Node { return NewConstrain() }, fields("SQUARE"), RcOk, "SQUARE"},
		{"constrain size", func() Node { return NewConstrain() }, fields("COLS 3"), RcOk, "COLS 3"},
		{"constrain bad", func() Node { return NewConstrain() }, fields("ROWS 3"), RcFailure, ""},
		{"freeform", func() Node { return NewFreeForm() }, fields("PLI LEFT"), RcOk, "PLI LEFT"},
		{"freeform off", func() Node { return NewFreeForm() }, fields("FALSE"), RcOk, "FALSE"},
		{"arrow head", func() Node { return NewArrowHead(0, 0, 0, 0) }, fields("0 0.125 0.25 0.0625"), RcOk, "0 0.125 0.25 0.0625"},
		{"resolution", func() Node { return NewResolution() }, fields("300 DPCM"), RcResolution, "300 DPCM"},
		{"resolution bad unit", func() Node { return NewResolution() }, fields("300 DPM"), RcFailure, ""},
		{"page size", func() Node { return NewPageSize(nil) }, fields("8.5 11 Letter"), RcPageSize, "8.5000 11.0000 Letter"},
		{"page size too big", func() Node { return NewPageSize(nil) }, fields("8.5 1100"), RcRangeError, ""},
	})
}

func TestCompoundLeaves(t *testing.T) {
	runLeafCases(t, []leafCase{
		{"background color", func() Node { return NewBackground(BackgroundData{}) }, fields("COLOR 0xFFCCCC"), RcOk, `COLOR "0xFFCCCC"`},
		{"background transparent", func() Node { return NewBackground(BackgroundData{}) }, fields("TRANSPARENT"), RcOk, "TRANSPARENT"},
		{"background submodel", func() Node { return NewBackground(BackgroundData{}) }, fields("SUBMODEL_BACKGROUND_COLOR"), RcOk, "SUBMODEL_BACKGROUND_COLOR"},
		{"background picture", func() Node { return NewBackground(BackgroundData{}) }, fields("PICTURE logo.png STRETCH"), RcOk, `PICTURE "logo.png" STRETCH`},
		{
			"background gradient",
			func() Node { return NewBackground(BackgroundData{}) },
			fields("GRADIENT 0 0 0 1 1 0 0,0|1,1 0,0xff000000|1,0xffffffff"),
			RcOk,
			`GRADIENT 0 0 0 1 1 0 "0,0|1,1" "0,0xff000000|1,0xffffffff"`,
		},
		{"background gradient short", func() Node { return NewBackground(BackgroundData{}) }, fields("GRADIENT 0 0 0 1 1 0"), RcFailure, ""},
		{"border round", func() Node { return NewBorder(BorderData{}) }, fields("ROUND 1 Black 0.015625 15 MARGINS 0 0"), RcOk, "ROUND 1 Black 0.015625 15 MARGINS 0 0"},
		{"border none", func() Node { return NewBorder(BorderData{}) }, fields("NONE"), RcOk, "NONE 1 MARGINS 0 0"},
		{"border old square", func() Node { return NewBorder(BorderData{}) }, fields("SQUARE Black 0.5"), RcOk, "SQUARE 1 Black 0.5 MARGINS 0 0"},
		{"border hidden", func() Node { return NewBorder(BorderData{}) }, fields("HIDDEN 2 Red 0.25 MARGINS 0.1 0.2"), RcOk, "HIDDEN 2 Red 0.25 MARGINS 0.1 0.2"},
		{"border bad thickness", func() Node { return NewBorder(BorderData{}) }, fields("ROUND 1 Black thick 15"), RcFailure, ""},
		{"border bad margins", func() Node { return NewBorder(BorderData{}) }, fields("NONE 1 MARGIN 0 0"), RcFailure, ""},
		{
			"pointer corner",
			func() Node { return NewPointer(RcCalloutPointer, false) },
			fields("TOP_LEFT 0.5 0.25"),
			RcCalloutPointer,
			"TOP_LEFT 0.500 0.250 0.000 0.000 0.000 0.000 0.000 0.000 0.125 1",
		},
		{
			"pointer side with base",
			func() Node { return NewPointer(RcCalloutPointer, false) },
			fields("BOTTOM 0.3 0.5 0.5 0.2"),
			RcCalloutPointer,
			"BOTTOM 0.300 0.500 0.500 0.000 0.000 0.000 0.000 0.000 0.000 0.2 1",
		},
		{
			"page pointer segments",
			func() Node { return NewPointer(RcPagePointer, true) },
			fields("TOP_LEFT 0.5 0.5 0.1 0.1 0.2 0.2 0.3 0.3 0.125 3 BASE_CENTER"),
			RcPagePointer,
			"TOP_LEFT 0.500 0.500 0.100 0.100 0.200 0.200 0.300 0.300 0.125 3 BASE_CENTER",
		},
		{"page pointer bad rect", func() Node { return NewPointer(RcPagePointer, true) }, fields("TOP_LEFT 0.5 0.5 0.1 0.1 0.2 0.2 0.3 0.3 0.125 3 BASE_NOWHERE"), RcFailure, ""},
		{"pointer no values", func() Node { return NewPointer(RcCalloutPointer, false) }, fields("LEFT"), RcFailure, ""},
		{"pointer line", func() Node { return NewPointerAttrib(RcCalloutPointerAttrib) }, fields("LINE 1 Black 0.03125 0 2"), RcCalloutPointerAttrib, "LINE 1 Black 0.03125 0 2"},
		{"pointer border", func() Node { return NewPointerAttrib(RcPagePointerAttrib) }, fields("BORDER 1 Red 0.5 3 parent"), RcPagePointerAttrib, "BORDER 1 Red 0.5 3 parent"},
		{"pointer attrib zero id", func() Node { return NewPointerAttrib(RcPagePointerAttrib) }, fields("BORDER 1 Red 0.5 0"), RcFailure, ""},
		{"separator", func() Node { return NewSep() }, fields("0.02 Black 0.1 0.1"), RcOk, "0.02 Black 0.1 0.1"},
		{"separator custom", func() Node { return NewSep() }, fields("CUSTOM 2.5 0.02 Black 0.1 0.1"), RcOk, "CUSTOM_LENGTH 2.5 0.02 Black 0.1 0.1"},
		{"separator page", func() Node { return NewSep() }, fields("PAGE 0.02 Black 0 0"), RcOk, "PAGE_LENGTH 0.02 Black 0 0"},
		{"separator short", func() Node { return NewSep() }, fields("0.02 Black"), RcFailure, ""},
		{"insert text", func() Node { return NewInsert() }, fields("TEXT Hello Arial,12 Black OFFSET 0.1 0.2"), RcInsert, `TEXT "Hello" "Arial,12" "Black" OFFSET 0.1 0.2`},
		{"insert arrow", func() Node { return NewInsert() }, fields("ARROW 0 0 1 1 0.25 0.5 0.5"), RcInsert, "ARROW 0 0 1 1 0.25 0.5 0.5"},
		{"insert bom", func() Node { return NewInsert() }, fields("BOM"), RcInsert, "BOM"},
		{"insert bad offset", func() Node { return NewInsert() }, fields("BOM OFFSET 1"), RcFailure, ""},
		{"rotstep", func() Node { return NewRotStep() }, fields("0 -90 45.5 REL"), RcRotStep, "0 -90 45.5 REL"},
		{"rotstep end", func() Node { return NewRotStep() }, fields("END"), RcRotStep, "END"},
		{"bufexchg", func() Node { return NewBufExchg() }, fields("B RETRIEVE"), RcBufferLoad, "B RETRIEVE"},
		{"bufexchg lowercase buffer", func() Node { return NewBufExchg() }, fields("b STORE"), RcFailure, ""},
		{"sub with color", func() Node { return NewSub() }, fields("3001.dat 4"), RcPliBeginSub2, "3001.dat 4"},
		{"sub part only", func() Node { return NewSub() }, fields("3001.dat"), RcPliBeginSub1, "3001.dat"},
	})
}

func TestCell_StoreAndPop(t *testing.T) {
	var c Cell[int]
	first := Where{ModelName: "a.ldr", LineNumber: 1}
	second := Where{ModelName: "a.ldr", LineNumber: 2}

	c.store(1, first, ScopeNone)
	assert.Equal(t, 1, c.Value())
	assert.False(t, c.Overridden())

	c.store(2, second, ScopeLocal)
	assert.Equal(t, 2, c.Value())
	assert.Equal(t, second, c.Here())

	c.store(3, second, ScopeNone)
	assert.Equal(t, 3, c.Value(), "an active override keeps receiving writes")
	assert.Equal(t, 1, c.Default.Value)

	c.Pop()
	assert.Equal(t, 1, c.Value())
	assert.Equal(t, first, c.Here())
}
