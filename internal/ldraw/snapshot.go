package ldraw

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"lpubmeta/internal/version"
)

// Snapshot is a copy of the registry state that can be written out and restored later.
type Snapshot struct {
	Format   string    `msgpack:"format" json:"format"`
	ID       string    `msgpack:"id" json:"id"`
	Taken    time.Time `msgpack:"taken" json:"taken"`
	MPD      bool      `msgpack:"mpd" json:"mpd"`
	Document Metadata  `msgpack:"document" json:"document"`
	Files    []SubFile `msgpack:"files" json:"files"`

	// Changed names the models that changed since the previous snapshot.
	Changed []string `msgpack:"changed" json:"changed"`
}

// Snapshot copies the registry state. Taking it clears the changed since last write
// flag of every model.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Format:   version.SnapshotFormat,
		ID:       uuid.New().String(),
		Taken:    time.Now(),
		MPD:      r.mpd,
		Document: r.meta,
	}
	for _, k := range r.order {
		f := r.files[k]
		snap.Files = append(snap.Files, f.clone())
		if f.changedSinceLastWrite {
			snap.Changed = append(snap.Changed, f.Name)
			f.changedSinceLastWrite = false
		}
	}
	r.log.Debug("Snapshot taken", "id", snap.ID, "models", len(snap.Files), "changed", len(snap.Changed))
	return snap
}

// Restore replaces the registry contents with a snapshot. Counts and flags come back
// as they were when the snapshot was taken.
func (r *Registry) Restore(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.empty()
	for _, sf := range snap.Files {
		f := sf.clone()
		r.files[key(f.Name)] = &f
		r.order = append(r.order, key(f.Name))
	}
	r.mpd = snap.MPD
	r.meta = snap.Document
	r.log.Debug("Snapshot restored", "id", snap.ID, "models", len(r.order))
}

// WriteSnapshot encodes a snapshot with MessagePack.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot. Snapshots from an
// incompatible format version are rejected.
func ReadSnapshot(rd io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(rd).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := version.CompatibleSnapshot(snap.Format); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
