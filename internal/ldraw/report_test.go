package ldraw

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReport(t *testing.T) {
	rep := readDoc(t, carMPD).Report()

	want := []ModelCount{
		{Name: "main.ldr", Instances: 1, NumSteps: 3, Submodel: true},
		{Name: "Sub.ldr", Instances: 1, MirrorInstances: 1, NumSteps: 2, Level: 1, Submodel: true},
	}
	if diff := cmp.Diff(want, rep.Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rep.MPD)
	assert.Equal(t, "Jane Builder", rep.Document.Author)
	assert.Empty(t, rep.Cycles)
}

func TestReport_Encode(t *testing.T) {
	rep := readDoc(t, carMPD).Report()

	data, err := rep.Encode("yaml")
	require.NoError(t, err)
	var fromYAML CountReport
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, rep.Models, fromYAML.Models)
	assert.Contains(t, string(data), "mirror_instances: 1")

	data, err = rep.Encode("json")
	require.NoError(t, err)
	var fromJSON CountReport
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, rep.Document, fromJSON.Document)

	_, err = rep.Encode("xml")
	assert.Error(t, err)
}

func TestReport_Cycles(t *testing.T) {
	r := readDoc(t, "0 FILE a.ldr\n1 1 0 0 0 1 0 0 0 1 0 0 0 1 a.ldr\n0 NOFILE\n")

	rep := r.Report()
	require.Len(t, rep.Cycles, 1)

	data, err := rep.Encode("json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a.ldr -> a.ldr"`)
}
