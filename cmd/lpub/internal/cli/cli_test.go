package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lpubmeta/internal/ldraw"
)

// run executes lpub with args in a scratch working directory and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := NewApp().CreateRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--test-mode"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const scaledLDR = `0 Tower
0 Name: tower.ldr
0 Author: Tester
0 !LPUB ASSEM MODEL_SCALE 2
1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
`

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "LPub Meta v")

	out, err = run(t, "version", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot Format:")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "sample",
			args: []string{"parse", "sample:car"},
			want: []string{
				`car.ldr:4 [Ok] 0 !LPUB PAGE BACKGROUND COLOR "0xFFFFFF"`,
				"car.ldr:9 [CalloutBegin]",
				"wheel.ldr:6 [Step]",
			},
			notWant: []string{"car.ldr:0 [Ok]"},
		},
		{
			name:    "one model",
			args:    []string{"parse", "sample:car", "--model", "WHEEL.ldr"},
			want:    []string{"wheel.ldr:4 [Step]"},
			notWant: []string{"car.ldr"},
		},
		{
			name: "all lines",
			args: []string{"parse", "sample:car", "--all"},
			want: []string{"car.ldr:0 [Ok]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestParse_Failures(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.ldr", "0 !LPUB ASSEM MODEL_SCALE abc\n0 STEP\n")
	out, err := run(t, "parse", path)
	require.Error(t, err)
	assert.Equal(t, "1 lines did not parse", err.Error())
	assert.Contains(t, out, "bad.ldr:0 [ParseFailure]")

	_, err = run(t, "parse", path, "--model", "ghost.ldr")
	assert.ErrorIs(t, err, ldraw.ErrNotFound)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "sample:car")
	require.NoError(t, err)
	assert.Contains(t, out, "All meta-commands are canonical")

	path := writeFile(t, t.TempDir(), "tower.ldr", scaledLDR)
	out, err = run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "tower.ldr:3 0 !LPUB ASSEM MODEL_SCALE 2{+.0000+}")
	assert.Contains(t, out, "1 lines differ, 0 lines did not parse")

	_, err = run(t, "check", path, "--strict")
	assert.Error(t, err)
}

func TestCheck_QualifiersKept(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "local scale then plain scale",
			content: "0 Tower\n0 !LPUB ASSEM MODEL_SCALE LOCAL 2.0000\n" +
				"1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n0 STEP\n0 !LPUB ASSEM MODEL_SCALE 3.0000\n0 STEP\n",
		},
		{
			name: "plain background after global",
			content: "0 Tower\n0 !LPUB PAGE BACKGROUND GLOBAL COLOR \"0xFFCCCC\"\n" +
				"0 !LPUB PAGE BACKGROUND COLOR \"0xFFFFFF\"\n0 STEP\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "tower.ldr", tt.content)
			out, err := run(t, "check", path, "--strict")
			require.NoError(t, err)
			assert.Contains(t, out, "All meta-commands are canonical")
		})
	}
}

func TestCount(t *testing.T) {
	out, err := run(t, "count", "sample:car")
	require.NoError(t, err)
	assert.Contains(t, out, "Small Car")
	assert.Contains(t, out, "INSTANCES")
	assert.Contains(t, out, "wheel.ldr")

	out, err = run(t, "count", "sample:car", "--format", "json")
	require.NoError(t, err)
	var rep ldraw.CountReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Models, 2)
	assert.Equal(t, ldraw.ModelCount{
		Name: "wheel.ldr", Instances: 1, MirrorInstances: 2, NumSteps: 2, Level: 1, Submodel: true,
	}, rep.Models[1])

	_, err = run(t, "count", "sample:car", "--format", "xml")
	assert.ErrorContains(t, err, "invalid report_format")
}

func TestCount_FormatFromEnvironment(t *testing.T) {
	t.Setenv("LPUB_REPORT_FORMAT", "yaml")
	out, err := run(t, "count", "sample:car")
	require.NoError(t, err)

	var rep ldraw.CountReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "car.ldr", rep.Document.FileName)
	assert.True(t, rep.MPD)
}

func TestLoad(t *testing.T) {
	out, err := run(t, "load", "sample:car")
	require.NoError(t, err)
	assert.Contains(t, out, "car.ldr (MPD)")
	assert.Contains(t, out, "Author: LPub Samples")

	_, err = run(t, "load", "sample:ghost")
	assert.Error(t, err)
}

func TestLoad_SearchDirs(t *testing.T) {
	lib := t.TempDir()
	writeFile(t, lib, "axle.ldr", "0 Axle\n1 0 0 0 0 1 0 0 0 1 0 0 0 1 3705.dat\n")
	path := writeFile(t, t.TempDir(), "cart.ldr",
		"0 Cart\n1 0 0 0 0 1 0 0 0 1 0 0 0 1 axle.ldr\n0 STEP\n")

	out, err := run(t, "load", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "axle.ldr")

	out, err = run(t, "--search-dir", lib, "load", path)
	require.NoError(t, err)
	assert.Contains(t, out, "axle.ldr")
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tower.ldr", scaledLDR)

	out, err := run(t, "save", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "1 lines would change")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, scaledLDR, string(data))

	target := filepath.Join(dir, "canonical.ldr")
	out, err = run(t, "save", path, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0 !LPUB ASSEM MODEL_SCALE 2.0000\n")

	out, err = run(t, "save", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to write")
}

func TestDoc(t *testing.T) {
	out, err := run(t, "doc", "--plain", "rotstep")
	require.NoError(t, err)
	assert.Contains(t, out, "0 ROTSTEP")
	assert.NotContains(t, out, "0 !LPUB")

	out, err = run(t, "doc", "callout")
	require.NoError(t, err)
	assert.Contains(t, out, "## !LPUB CALLOUT")
}

func TestSnapshot(t *testing.T) {
	snapPath := filepath.Join(t.TempDir(), "car.snap")

	out, err := run(t, "snapshot", "write", "sample:car", snapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 models written")

	out, err = run(t, "snapshot", "show", snapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Format 1.1.0")
	assert.Contains(t, out, "wheel.ldr")

	_, err = run(t, "snapshot", "show", filepath.Join(t.TempDir(), "missing.snap"))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "lpub.yaml", "report_format: json\n")
	out, err := run(t, "--config", cfgPath, "count", "sample:car")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
}
