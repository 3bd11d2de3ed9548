package meta

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var here = Where{ModelName: "main.ldr", LineNumber: 3}

func TestMetaParse_ActionCodes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Rc
	}{
		{"step", "0 STEP", RcStep},
		{"clear", "0 CLEAR", RcClear},
		{"rotstep", "0 ROTSTEP 0 90 0 ABS", RcRotStep},
		{"rotstep end", "0 ROTSTEP END", RcRotStep},
		{"rotstep bad type", "0 ROTSTEP 0 90 0 SIDEWAYS", RcFailure},
		{"buffer store", "0 BUFEXCHG A STORE", RcBufferStore},
		{"buffer retrieve", "0 BUFEXCHG A RETRIEVE", RcBufferLoad},
		{"callout begin", "0 !LPUB CALLOUT BEGIN", RcCalloutBegin},
		{"callout begin rotated", "0 !LPUB CALLOUT BEGIN ROTATED", RcCalloutBegin},
		{"callout divider", "0 !LPUB CALLOUT DIVIDER", RcCalloutDivider},
		{"callout end", "0 !LPUB CALLOUT END", RcCalloutEnd},
		{"callout pointer", "0 !LPUB CALLOUT POINTER TOP_LEFT 0.5 0.5", RcCalloutPointer},
		{"step group begin", "0 !LPUB MULTI_STEP BEGIN", RcStepGroupBegin},
		{"step group end", "0 !LPUB MULTI_STEP END", RcStepGroupEnd},
		{"pli ignore", "0 !LPUB PLI BEGIN IGN", RcPliBeginIgn},
		{"pli sub part", "0 !LPUB PLI BEGIN SUB 3001.dat", RcPliBeginSub1},
		{"pli sub part color", "0 !LPUB PLI BEGIN SUB 3001.dat 4", RcPliBeginSub2},
		{"pli end", "0 !LPUB PLI END", RcPliEnd},
		{"plist alias", "0 PLIST BEGIN IGN", RcPliBeginIgn},
		{"lpub synonym", "0 LPUB PLI END", RcPliEnd},
		{"bom ignore", "0 !LPUB BOM BEGIN IGN", RcBomBeginIgn},
		{"part ignore", "0 !LPUB PART BEGIN IGN", RcPartBeginIgn},
		{"part end", "0 !LPUB PART END", RcPartEnd},
		{"nostep", "0 !LPUB NOSTEP", RcNoStep},
		{"nostep trailing", "0 !LPUB NOSTEP NOW", RcFailure},
		{"insert page", "0 !LPUB INSERT PAGE", RcInsertPage},
		{"insert cover page", "0 !LPUB INSERT COVER_PAGE", RcInsertCoverPage},
		{"insert picture", `0 !LPUB INSERT PICTURE "logo.png" SCALE 0.5`, RcInsert},
		{"reserve", "0 !LPUB RESERVE 0.5", RcReserveSpace},
		{"include", `0 !LPUB INCLUDE "extra.ldr"`, RcInclude},
		{"resolution", "0 !LPUB RESOLUTION 300 DPI", RcResolution},
		{"orientation", "0 !LPUB PAGE ORIENTATION LANDSCAPE", RcPageOrientation},
		{"page pointer alias", "0 !LPUB PAGE_POINTER TOP_LEFT 0.25 0.75", RcPagePointer},
		{"remove part", `0 !LPUB REMOVE PART "3001.dat"`, RcRemovePart},
		{"synth begin", "0 SYNTH BEGIN", RcSynthBegin},
		{"mlcad group", "0 MLCAD BTG Wing Group", RcMLCadGroup},
		{"mlcad skip", "0 MLCAD SKIP_BEGIN", RcMLCadSkipBegin},
		{"mlcad other", `0 MLCAD ROTATION CENTER 0 0 0 1 "Custom"`, RcOk},
		{"ldcad group", "0 !LDCAD GROUP_NXT [ids=1] [nrs=-1]", RcLDCadGroup},
		{"leocad group begin", "0 !LEOCAD GROUP BEGIN Group #1", RcLeoCadGroupBegin},
		{"leocad group end", "0 !LEOCAD GROUP END", RcLeoCadGroupEnd},
		{"leocad other", "0 !LEOCAD CAMERA FOV 30", RcOk},
		{"plain comment", "0 Author: Somebody", RcOk},
		{"part line", "1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat", RcOk},
		{"empty", "", RcOk},
		{"unknown lpub keyword", "0 !LPUB FOO BAR", RcFailure},
		{"branch without leaf", "0 !LPUB ASSEM", RcFailure},
		{"unterminated quote", `0 !LPUB PAGE BACKGROUND COLOR "0xFF`, RcFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			assert.Equal(t, tt.want, m.Parse(tt.line, here, false))
		})
	}
}

func TestMetaParse_PageBackground(t *testing.T) {
	m := New()

	rc := m.Parse(`0 !LPUB PAGE BACKGROUND COLOR "0xFFCCCC"`, here, false)
	require.Equal(t, RcOk, rc)

	bg := m.LPub.Page.Background
	assert.Equal(t, BgColor, bg.Value().Kind)
	assert.Equal(t, "0xFFCCCC", bg.Value().Text)
	assert.Equal(t, here, bg.Here())
	assert.Equal(t, `0 !LPUB PAGE BACKGROUND COLOR "0xFFCCCC"`, bg.Format(false, false))
}

func TestMetaParse_ModelScaleRange(t *testing.T) {
	m := New()
	scale := m.LPub.Assem.ModelScale

	assert.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM MODEL_SCALE 200.0", here, false))
	assert.Equal(t, 200.0, scale.Value())

	assert.Equal(t, RcRangeError, m.Parse("0 !LPUB ASSEM MODEL_SCALE 5000000", here, false))
	assert.Equal(t, 200.0, scale.Value(), "a rejected value must not be stored")

	assert.Equal(t, RcFailure, m.Parse("0 !LPUB ASSEM MODEL_SCALE abc", here, false))
	assert.Equal(t, 200.0, scale.Value())

	assert.Equal(t, "0 !LPUB ASSEM MODEL_SCALE 200.0000", scale.Format(false, false))
}

func TestMetaParse_LocalOverrideAndPop(t *testing.T) {
	m := New()
	scale := m.LPub.Assem.ModelScale
	callout := Where{ModelName: "main.ldr", LineNumber: 10}

	require.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM MODEL_SCALE 2", here, false))
	require.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM MODEL_SCALE LOCAL 0.5", callout, false))

	assert.True(t, scale.Overridden())
	assert.Equal(t, 0.5, scale.Value())
	assert.Equal(t, callout, scale.Here())
	assert.Equal(t, "0 !LPUB ASSEM MODEL_SCALE LOCAL 0.5000", Restate(scale))

	// once overridden, later writes stay local until popped
	require.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM MODEL_SCALE 0.75", callout, false))
	assert.Equal(t, 0.75, scale.Value())
	assert.Equal(t, 2.0, scale.Default.Value)

	m.Pop()
	assert.False(t, scale.Overridden())
	assert.Equal(t, 2.0, scale.Value())
	assert.Equal(t, here, scale.Here())

	require.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM MODEL_SCALE 3", callout, false))
	assert.False(t, scale.Overridden())
	assert.Equal(t, 3.0, scale.Value())
}

func TestMetaParse_Global(t *testing.T) {
	m := New()

	require.Equal(t, RcOk, m.Parse("0 !LPUB PLI SHOW GLOBAL FALSE", here, false))
	show := m.LPub.Pli.Show
	assert.False(t, show.Value())
	assert.True(t, show.Global())
	assert.Equal(t, "0 !LPUB PLI SHOW GLOBAL FALSE", Restate(show))
}

func TestMetaParse_ViewAngleRewrite(t *testing.T) {
	m := New()

	require.Equal(t, RcOk, m.Parse("0 !LPUB ASSEM VIEW_ANGLE 30 60", here, false))
	assert.Equal(t, [2]float64{30, 60}, m.LPub.Assem.Angles.Value())
}

func TestMetaParse_PagePointerAlias(t *testing.T) {
	m := New()

	require.Equal(t, RcPagePointer, m.Parse("0 !LPUB PAGE_POINTER LEFT 0.2 0.25 0.75", here, false))
	v := m.LPub.Page.Pointer.Value()
	assert.Equal(t, Left, v.Placement)
	assert.Equal(t, 0.2, v.Loc)
	assert.Equal(t, 0.25, v.X1)
	assert.Equal(t, 0.75, v.Y1)
}

func TestMetaParse_CalloutAllocShorthand(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		rc         Rc
		alloc      string
		overridden bool
		restated   string
	}{
		{"bare value", "0 !LPUB CALLOUT VERTICAL", RcOk, "VERTICAL", false, "0 !LPUB CALLOUT ALLOC VERTICAL"},
		{"local value", "0 !LPUB CALLOUT LOCAL HORIZONTAL", RcOk, "HORIZONTAL", true, "0 !LPUB CALLOUT ALLOC LOCAL HORIZONTAL"},
		{"global value", "0 !LPUB CALLOUT GLOBAL HORIZONTAL", RcOk, "HORIZONTAL", false, "0 !LPUB CALLOUT ALLOC GLOBAL HORIZONTAL"},
		{"keyword form", "0 !LPUB CALLOUT ALLOC HORIZONTAL", RcOk, "HORIZONTAL", false, "0 !LPUB CALLOUT ALLOC HORIZONTAL"},
		{"step group", "0 !LPUB MULTI_STEP HORIZONTAL", RcOk, "", false, ""},
		{"unknown value", "0 !LPUB CALLOUT DIAGONAL", RcFailure, "VERTICAL", false, ""},
		{"whole token only", "0 !LPUB CALLOUT HORIZONTALLY", RcFailure, "VERTICAL", false, ""},
		{"qualifier alone", "0 !LPUB CALLOUT LOCAL", RcFailure, "VERTICAL", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			require.Equal(t, tt.rc, m.Parse(tt.line, here, false))
			if tt.alloc == "" {
				assert.Equal(t, "HORIZONTAL", m.LPub.MultiStep.Alloc.Value())
				return
			}
			alloc := m.LPub.Callout.Alloc
			assert.Equal(t, tt.alloc, alloc.Value())
			assert.Equal(t, tt.overridden, alloc.Overridden())
			if tt.restated != "" {
				assert.Equal(t, tt.restated, Restate(alloc))
			}
		})
	}
}

func TestMetaParse_ReportErrors(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	m.SetLogger(log.New(&buf))

	m.Parse("0 !LPUB ASSEM MODEL_SCALE abc", here, false)
	assert.Empty(t, buf.String())

	m.Parse("0 !LPUB ASSEM MODEL_SCALE abc", here, true)
	assert.Contains(t, buf.String(), "Parse failed")
	assert.Contains(t, buf.String(), "main.ldr")

	buf.Reset()
	m.Parse("0 !LPUB ASSEM MODEL_SCALE 2", here, true)
	assert.Empty(t, buf.String())
}

func TestMeta_Lookup(t *testing.T) {
	m := New()

	n, ok := m.Lookup("!LPUB", "PAGE", "BACKGROUND")
	require.True(t, ok)
	assert.Same(t, m.LPub.Page.Background, n)
	assert.Equal(t, "0 !LPUB PAGE BACKGROUND ", n.Preamble())

	_, ok = m.Lookup("!LPUB", "PAGE", "NOPE")
	assert.False(t, ok)

	_, ok = m.Lookup("STEP", "MORE")
	assert.False(t, ok)
}

func TestMeta_SettingsAndTouched(t *testing.T) {
	m := New()
	first := Where{ModelName: "main.ldr", LineNumber: 1}
	second := Where{ModelName: "main.ldr", LineNumber: 2}

	require.Equal(t, RcOk, m.Parse("0 !LPUB PLI SHOW FALSE", first, false))
	require.Equal(t, RcOk, m.Parse(`0 !LPUB PAGE BACKGROUND COLOR "0xFFCCCC"`, second, false))
	require.Equal(t, RcStep, m.Parse("0 STEP", Where{ModelName: "main.ldr", LineNumber: 4}, false))

	settings := m.Settings()
	require.Len(t, settings, 2)
	assert.Equal(t, `0 !LPUB PAGE BACKGROUND COLOR "0xFFCCCC"`, settings[0].Line)
	assert.Equal(t, second, settings[0].Here)
	assert.Equal(t, "0 !LPUB PLI SHOW FALSE", settings[1].Line)

	touched := m.Touched(first)
	require.Len(t, touched, 1)
	assert.Same(t, m.LPub.Pli.Show, touched[0])
}

func TestMeta_Doc(t *testing.T) {
	m := New()
	doc := m.Doc()

	assert.Contains(t, doc, "0 STEP")
	assert.Contains(t, doc, "0 !LPUB ASSEM MODEL_SCALE <float>")
	assert.Contains(t, doc, "0 !LPUB NOSTEP")
	assert.Contains(t, doc, "0 ROTSTEP END")

	md := m.DocMarkdown("callout")
	assert.Contains(t, md, "## !LPUB CALLOUT")
	assert.Contains(t, md, "0 !LPUB CALLOUT BEGIN ROTATED")
	assert.NotContains(t, md, "## !LPUB ASSEM\n")
}

func TestParseModel(t *testing.T) {
	m := New()
	results := m.ParseModel("main.ldr", []string{
		"0 Main Model",
		"0 !LPUB ASSEM MODEL_SCALE 2",
		"1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat",
		"0 STEP",
		"0 !LPUB ASSEM MODEL_SCALE 50000",
	}, false)

	require.Len(t, results, 5)
	assert.Equal(t, RcOk, results[0].Rc)
	assert.Empty(t, results[0].Set)
	assert.Equal(t, []string{"0 !LPUB ASSEM MODEL_SCALE 2.0000"}, results[1].Set)
	assert.Equal(t, Where{ModelName: "main.ldr", LineNumber: 1}, results[1].Here)
	assert.Equal(t, RcStep, results[3].Rc)
	assert.Empty(t, results[3].Set, "actions are not settings")
	assert.Equal(t, RcRangeError, results[4].Rc)
}

func TestRc_Text(t *testing.T) {
	text, err := RcCalloutBegin.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "CalloutBegin", string(text))

	var rc Rc
	require.NoError(t, rc.UnmarshalText([]byte("PagePointer")))
	assert.Equal(t, RcPagePointer, rc)
	assert.Error(t, rc.UnmarshalText([]byte("Nope")))
}

func TestParseModel_QualifierFollowsLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  [][]string
	}{
		{
			name: "local scale ends with its step",
			lines: []string{
				"0 !LPUB ASSEM MODEL_SCALE LOCAL 2.0000",
				"0 STEP",
				"0 !LPUB ASSEM MODEL_SCALE 3.0000",
			},
			want: [][]string{{"0 !LPUB ASSEM MODEL_SCALE LOCAL 2.0000"}, nil, {"0 !LPUB ASSEM MODEL_SCALE 3.0000"}},
		},
		{
			name: "plain background after a global one",
			lines: []string{
				`0 !LPUB PAGE BACKGROUND GLOBAL COLOR "0xFFCCCC"`,
				`0 !LPUB PAGE BACKGROUND COLOR "0xFFFFFF"`,
			},
			want: [][]string{{`0 !LPUB PAGE BACKGROUND GLOBAL COLOR "0xFFCCCC"`}, {`0 !LPUB PAGE BACKGROUND COLOR "0xFFFFFF"`}},
		},
		{
			name: "plain write inside a local override",
			lines: []string{
				"0 !LPUB PLI SHOW LOCAL FALSE",
				"0 !LPUB PLI SHOW TRUE",
				"0 !LPUB CALLOUT END",
				"0 !LPUB PLI SHOW FALSE",
			},
			want: [][]string{{"0 !LPUB PLI SHOW LOCAL FALSE"}, {"0 !LPUB PLI SHOW TRUE"}, nil, {"0 !LPUB PLI SHOW FALSE"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			results := m.ParseModel("main.ldr", tt.lines, false)
			require.Len(t, results, len(tt.want))
			for i, want := range tt.want {
				if want == nil {
					assert.Empty(t, results[i].Set, "line %d", i)
					continue
				}
				assert.Equal(t, want, results[i].Set, "line %d", i)
			}
		})
	}

	m := New()
	m.ParseModel("main.ldr", []string{"0 !LPUB ASSEM MODEL_SCALE LOCAL 2", "0 STEP", "0 !LPUB ASSEM MODEL_SCALE 3"}, false)
	assert.False(t, m.LPub.Assem.ModelScale.Overridden())
	assert.Equal(t, 3.0, m.LPub.Assem.ModelScale.Value())
}
