// Package ldraw keeps the models of one LDraw document: the top level model and every
// submodel it references, whether they came from one multi-part (MPD) file or from
// separate files on disk. It loads and saves documents and counts how often each
// submodel is placed.
package ldraw

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"lpubmeta/internal/logger"
)

// SubFile is one named model of the document.
type SubFile struct {
	Name            string    `json:"name" yaml:"name" msgpack:"name"`
	Contents        []string  `json:"contents" yaml:"contents" msgpack:"contents"`
	LastModified    time.Time `json:"last_modified" yaml:"last_modified" msgpack:"last_modified"`
	Modified        bool      `json:"modified" yaml:"modified" msgpack:"modified"`
	NumSteps        int       `json:"num_steps" yaml:"num_steps" msgpack:"num_steps"`
	Instances       int       `json:"instances" yaml:"instances" msgpack:"instances"`
	MirrorInstances int       `json:"mirror_instances" yaml:"mirror_instances" msgpack:"mirror_instances"`
	Rendered        bool      `json:"rendered" yaml:"rendered" msgpack:"rendered"`
	MirrorRendered  bool      `json:"mirror_rendered" yaml:"mirror_rendered" msgpack:"mirror_rendered"`
	UnofficialPart  bool      `json:"unofficial_part" yaml:"unofficial_part" msgpack:"unofficial_part"`
	Generated       bool      `json:"generated" yaml:"generated" msgpack:"generated"`
	Level           int       `json:"level" yaml:"level" msgpack:"level"`
	FadePosition    int       `json:"fade_position" yaml:"fade_position" msgpack:"fade_position"`
	StartPageNumber int       `json:"start_page_number" yaml:"start_page_number" msgpack:"start_page_number"`

	beenCounted           bool
	changedSinceLastWrite bool
}

func (f *SubFile) clone() SubFile {
	c := *f
	c.Contents = append([]string(nil), f.Contents...)
	return c
}

func (f *SubFile) touch() {
	f.Modified = true
	f.changedSinceLastWrite = true
}

// Registry holds the models of one document keyed by lowercased name.
//
// All methods are safe for concurrent use. Names are matched case-insensitively and
// unknown names are tolerated: queries return zero values and edits return ErrNotFound.
type Registry struct {
	mu    sync.RWMutex
	files map[string]*SubFile
	order []string
	mpd   bool
	meta  Metadata

	searchDirs     []string
	extendedSearch bool

	log        *log.Logger
	counterLog *log.Logger
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		files:      make(map[string]*SubFile),
		log:        logger.NewStyledLogger("LDraw"),
		counterLog: logger.NewStyledLogger("Counter"),
	}
}

// SetLogger replaces the registry's loggers.
func (r *Registry) SetLogger(l *log.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = l
	r.counterLog = l
}

// SetSearchDirs sets the extra directories searched for referenced files when loading
// a document kept as separate files. With extended set, each directory's parts and
// models subdirectories are searched too.
func (r *Registry) SetSearchDirs(dirs []string, extended bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchDirs = append([]string(nil), dirs...)
	r.extendedSearch = extended
}

func key(name string) string {
	return strings.ToLower(name)
}

// Empty drops every model, ready for a new document.
func (r *Registry) Empty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.empty()
}

func (r *Registry) empty() {
	r.files = make(map[string]*SubFile)
	r.order = nil
	r.mpd = false
	r.meta = Metadata{}
}

// Insert adds a model, replacing any model of the same name.
func (r *Registry) Insert(name string, contents []string, lastModified time.Time, unofficialPart, generated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(name, contents, lastModified, unofficialPart, generated)
}

func (r *Registry) insert(name string, contents []string, lastModified time.Time, unofficialPart, generated bool) {
	k := key(name)
	if _, ok := r.files[k]; ok {
		r.removeFromOrder(k)
	}
	r.files[k] = &SubFile{
		Name:                  name,
		Contents:              append([]string(nil), contents...),
		LastModified:          lastModified,
		UnofficialPart:        unofficialPart,
		Generated:             generated,
		changedSinceLastWrite: true,
	}
	r.order = append(r.order, k)
	r.log.Debug("Inserted model", "name", name, "lines", len(contents), "unofficial", unofficialPart)
}

func (r *Registry) removeFromOrder(k string) {
	for i, n := range r.order {
		if n == k {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (r *Registry) lookup(name string) (*SubFile, bool) {
	f, ok := r.files[key(name)]
	return f, ok
}

// Get returns a copy of the named model.
func (r *Registry) Get(name string) (SubFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.lookup(name)
	if !ok {
		return SubFile{}, false
	}
	return f.clone(), true
}

// Size returns the number of lines in the named model.
func (r *Registry) Size(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return len(f.Contents)
	}
	return 0
}

// IsMpd reports whether the document was loaded from a single multi-part file.
func (r *Registry) IsMpd() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mpd
}

// IsUnofficialPart reports whether the named model carries an unofficial part header.
func (r *Registry) IsUnofficialPart(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.UnofficialPart
	}
	return false
}

// TopLevelFile returns the first model loaded, or "" for an empty registry.
func (r *Registry) TopLevelFile() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.topLevel()
}

func (r *Registry) topLevel() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// NumSteps returns the step count from the last CountInstances.
func (r *Registry) NumSteps(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.NumSteps
	}
	return 0
}

// LastModified returns the file time recorded when the model was loaded.
func (r *Registry) LastModified(name string) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.LastModified
	}
	return time.Time{}
}

// Contains reports whether a model of that name is loaded.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.lookup(name)
	return ok
}

// IsSubmodel reports whether name is a loaded model that is neither an unofficial part
// nor generated.
func (r *Registry) IsSubmodel(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSubmodel(name)
}

func (r *Registry) isSubmodel(name string) bool {
	f, ok := r.lookup(name)
	return ok && !f.UnofficialPart && !f.Generated
}

// Modified reports whether any model has been edited since it was loaded.
func (r *Registry) Modified() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.files {
		if f.Modified {
			return true
		}
	}
	return false
}

// IsModified reports whether the named model has been edited.
func (r *Registry) IsModified(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.Modified
	}
	return false
}

// Contents returns a copy of the named model's lines.
func (r *Registry) Contents(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return append([]string(nil), f.Contents...)
	}
	return nil
}

// SetContents replaces the named model's lines.
func (r *Registry) SetContents(name string, contents []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return ErrNotFound
	}
	f.Contents = append([]string(nil), contents...)
	f.touch()
	logger.SubfileOperation("set contents", name, "lines", len(contents))
	return nil
}

// Older reports whether every loaded model in stack was last modified no later than t.
func (r *Registry) Older(stack []string, t time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range stack {
		if f, ok := r.lookup(name); ok && f.LastModified.After(t) {
			return false
		}
	}
	return true
}

// SubFileOrder returns the lowercased model names in load order.
func (r *Registry) SubFileOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// FileOrderIndex returns the load position of the named model, or -1.
func (r *Registry) FileOrderIndex(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k := key(name)
	for i, n := range r.order {
		if n == k {
			return i
		}
	}
	return -1
}

// ReadLine returns one line of the named model.
func (r *Registry) ReadLine(name string, lineNumber int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.lookup(name)
	if !ok {
		return "", ErrNotFound
	}
	if lineNumber < 0 || lineNumber >= len(f.Contents) {
		return "", ErrLineRange
	}
	return f.Contents[lineNumber], nil
}

// InsertLine inserts line before lineNumber; lineNumber may equal the model size to append.
func (r *Registry) InsertLine(name string, lineNumber int, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return ErrNotFound
	}
	if lineNumber < 0 || lineNumber > len(f.Contents) {
		return ErrLineRange
	}
	f.Contents = append(f.Contents, "")
	copy(f.Contents[lineNumber+1:], f.Contents[lineNumber:])
	f.Contents[lineNumber] = line
	f.touch()
	logger.SubfileOperation("insert line", name, "line", lineNumber)
	return nil
}

// ReplaceLine overwrites one line.
func (r *Registry) ReplaceLine(name string, lineNumber int, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return ErrNotFound
	}
	if lineNumber < 0 || lineNumber >= len(f.Contents) {
		return ErrLineRange
	}
	f.Contents[lineNumber] = line
	f.touch()
	logger.SubfileOperation("replace line", name, "line", lineNumber)
	return nil
}

// DeleteLine removes one line.
func (r *Registry) DeleteLine(name string, lineNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return ErrNotFound
	}
	if lineNumber < 0 || lineNumber >= len(f.Contents) {
		return ErrLineRange
	}
	f.Contents = append(f.Contents[:lineNumber], f.Contents[lineNumber+1:]...)
	f.touch()
	logger.SubfileOperation("delete line", name, "line", lineNumber)
	return nil
}

// ChangeContents applies a text edit to the model joined with newlines: removed
// characters at position are replaced by added. Positions count bytes.
func (r *Registry) ChangeContents(name string, position, removed int, added string) error {
	if removed == 0 && added == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return ErrNotFound
	}
	all := strings.Join(f.Contents, "\n")
	if position < 0 || position > len(all) || removed < 0 {
		return ErrLineRange
	}
	end := min(position+removed, len(all))
	all = all[:position] + added + all[end:]
	f.Contents = strings.Split(all, "\n")
	f.touch()
	logger.SubfileOperation("change contents", name, "position", position, "removed", removed, "added", len(added))
	return nil
}

// Unrendered clears the rendered flags of every model.
func (r *Registry) Unrendered() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		f.Rendered = false
		f.MirrorRendered = false
	}
}

// SetRendered marks the plain or mirrored image of a model as rendered.
func (r *Registry) SetRendered(name string, mirrored bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.lookup(name); ok {
		if mirrored {
			f.MirrorRendered = true
		} else {
			f.Rendered = true
		}
	}
}

// Rendered reports whether the plain or mirrored image of a model was rendered.
func (r *Registry) Rendered(name string, mirrored bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.lookup(name)
	if !ok {
		return false
	}
	if mirrored {
		return f.MirrorRendered
	}
	return f.Rendered
}

// Instances returns the plain or mirrored instance count from the last CountInstances.
func (r *Registry) Instances(name string, mirrored bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.lookup(name)
	if !ok {
		return 0
	}
	if mirrored {
		return f.MirrorInstances
	}
	return f.Instances
}

// Level returns how deep below the top level model a model is referenced.
func (r *Registry) Level(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.Level
	}
	return 0
}

// FadePosition returns the line the previous step's fade ended at.
func (r *Registry) FadePosition(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.FadePosition
	}
	return 0
}

// SetFadePosition records the line the current step's fade ends at.
func (r *Registry) SetFadePosition(name string, position int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.lookup(name); ok {
		f.FadePosition = position
	}
}

// StartPageNumber returns the page the model's instructions start on.
func (r *Registry) StartPageNumber(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.lookup(name); ok {
		return f.StartPageNumber
	}
	return 0
}

// SetStartPageNumber records the page the model's instructions start on.
func (r *Registry) SetStartPageNumber(name string, page int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.lookup(name); ok {
		f.StartPageNumber = page
	}
}

// ChangedSinceLastWrite reports whether the model changed since the last call for it,
// and clears the flag.
func (r *Registry) ChangedSinceLastWrite(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.lookup(name)
	if !ok {
		return false
	}
	changed := f.changedSinceLastWrite
	f.changedSinceLastWrite = false
	return changed
}

// Metadata returns the document details captured at load.
func (r *Registry) Metadata() Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meta
}
