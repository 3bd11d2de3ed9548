package ldraw

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpubmeta/internal/version"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	r := readDoc(t, carMPD)
	r.CountInstances()

	snap := r.Snapshot()
	_, err := uuid.Parse(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ldr", "Sub.ldr"}, snap.Changed)
	assert.Empty(t, r.Snapshot().Changed, "taking a snapshot clears the changed flags")

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, snap))
	decoded, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, decoded.ID)
	assert.Equal(t, version.SnapshotFormat, decoded.Format)

	restored := New()
	restored.Restore(decoded)

	assert.True(t, restored.IsMpd())
	assert.Equal(t, r.SubFileOrder(), restored.SubFileOrder())
	assert.Equal(t, r.Metadata(), restored.Metadata())
	for _, name := range r.SubFileOrder() {
		want, _ := r.Get(name)
		got, ok := restored.Get(name)
		require.True(t, ok)
		if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(SubFile{})); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
	assert.Equal(t, 1, restored.Instances("sub.ldr", true))
}

func TestReadSnapshot_Rejects(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, Snapshot{Format: "2.0.0", ID: "future"}))
	_, err = ReadSnapshot(&buf)
	assert.ErrorContains(t, err, "not readable")
}
