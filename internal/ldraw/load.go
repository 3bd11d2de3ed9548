package ldraw

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lpubmeta/internal/logger"
)

const maxLineLength = 1 << 20

// Load replaces the registry contents with the document at path.
//
// A file whose first "0 FILE" line comes before its first type 1 line is read as a
// multi-part document. Otherwise it is the top level model of a document kept as
// separate files, and every model it references that can be found next to it or on
// the search path is loaded too. An unreadable top level file leaves the registry
// unchanged.
func (r *Registry) Load(path string) error {
	lines, modTime, err := readFile(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.empty()
	if isMultiPart(lines) {
		r.loadMPD(lines, modTime)
	} else {
		r.loadLDR(filepath.Dir(path), filepath.Base(path), lines, modTime, nil)
	}
	r.finishLoad()
	return nil
}

// Read replaces the registry contents with a document read from rd. A document that is
// not multi-part becomes a single model called name; its references are not resolved.
func (r *Registry) Read(name string, rd io.Reader, modTime time.Time) error {
	lines, err := readLines(rd)
	if err != nil {
		return &IOError{Op: "read", Path: name, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.empty()
	if isMultiPart(lines) {
		r.loadMPD(lines, modTime)
	} else {
		r.insert(name, lines, modTime, hasUnofficialHeader(lines), false)
	}
	r.finishLoad()
	return nil
}

func readFile(path string) ([]string, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, &IOError{Op: "stat", Path: path, Err: err}
	}

	lines, err := readLines(f)
	if err != nil {
		return nil, time.Time{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return lines, info.ModTime(), nil
}

func readLines(rd io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func isMultiPart(lines []string) bool {
	for _, line := range lines {
		if startOfFile.MatchString(line) {
			return true
		}
		if partLine.MatchString(line) {
			return false
		}
	}
	return false
}

func hasUnofficialHeader(lines []string) bool {
	for _, line := range lines {
		if unofficial.MatchString(line) {
			return true
		}
	}
	return false
}

// loadMPD inserts every FILE block in order of appearance. Blank lines inside a block
// are dropped and a repeated block name keeps its first block.
func (r *Registry) loadMPD(lines []string, modTime time.Time) {
	var (
		name       string
		contents   []string
		unofficial bool
	)

	flush := func() {
		if name != "" {
			if _, ok := r.lookup(name); ok {
				r.log.Warn("Duplicate model ignored", "name", name)
			} else {
				r.insert(name, contents, modTime, unofficial, false)
			}
		}
		name, contents, unofficial = "", nil, false
	}

	for _, line := range lines {
		switch {
		case startOfFile.MatchString(line):
			flush()
			name = strings.TrimSpace(startOfFile.FindStringSubmatch(line)[1])
		case endOfFile.MatchString(line):
			flush()
		case name != "" && line != "":
			if hasUnofficialHeader([]string{line}) {
				unofficial = true
			}
			contents = append(contents, line)
		}
	}
	flush()
	r.mpd = true
}

// loadLDR inserts one model file and then every model file it references that can be
// resolved. stack holds the models being loaded above this one.
func (r *Registry) loadLDR(dir, name string, lines []string, modTime time.Time, stack []string) {
	r.insert(name, lines, modTime, hasUnofficialHeader(lines), false)
	stack = append(stack, key(name))

	for _, line := range lines {
		argv := split(line)
		if len(argv) != 15 || argv[0] != "1" {
			continue
		}
		ref := argv[14]
		if i := indexOf(stack, key(ref)); i >= 0 {
			r.cycle("load", append(append([]string(nil), stack[i:]...), key(ref)))
			continue
		}
		if _, ok := r.lookup(ref); ok {
			continue
		}
		path, ok := r.resolve(dir, ref)
		if !ok {
			continue
		}
		subLines, subTime, err := readFile(path)
		if err != nil {
			r.log.Warn("Referenced model not loaded", "name", ref, "err", err)
			continue
		}
		r.loadLDR(dir, ref, subLines, subTime, stack)
	}
}

// resolve finds a referenced file next to the top level model or on the search path.
func (r *Registry) resolve(dir, name string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))

	candidates := []string{filepath.Join(dir, rel)}
	for _, sd := range r.searchDirs {
		candidates = append(candidates, filepath.Join(sd, rel))
		if r.extendedSearch {
			candidates = append(candidates,
				filepath.Join(sd, "parts", rel),
				filepath.Join(sd, "p", rel),
				filepath.Join(sd, "models", rel))
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func (r *Registry) finishLoad() {
	top := r.topLevel()
	if top == "" {
		return
	}
	f := r.files[top]
	r.levels(top)

	r.meta = captureMetadata(f.Name, f.Contents)
	r.meta.Pieces = r.pieces(top, []string{top}, make(map[string]int))

	for _, f := range r.files {
		f.changedSinceLastWrite = true
	}
	r.log.Info("Loaded document", "top", f.Name, "models", len(r.order), "mpd", r.mpd, "pieces", r.meta.Pieces)
}

// levels records how deep below the top level model each submodel is referenced.
// The top level model is level 0 and the models it places are level 1. A model
// referenced at several depths keeps the shallowest, and models the top level never
// reaches keep the level they had.
func (r *Registry) levels(top string) {
	r.files[top].Level = 0
	seen := map[string]bool{top: true}
	queue := []string{top}
	for level := 1; len(queue) > 0; level++ {
		var next []string
		for _, name := range queue {
			for _, ref := range r.subFileRefs(name) {
				if seen[ref] {
					continue
				}
				seen[ref] = true
				r.files[ref].Level = level
				next = append(next, ref)
			}
		}
		queue = next
	}
}

// subFileRefs lists the registered models placed by name, by key, in line order.
func (r *Registry) subFileRefs(name string) []string {
	f, ok := r.lookup(name)
	if !ok {
		return nil
	}
	var refs []string
	for _, line := range f.Contents {
		if !subFileLine.MatchString(line) {
			continue
		}
		argv := split(line)
		if len(argv) == 0 {
			continue
		}
		ref := key(argv[len(argv)-1])
		if _, ok := r.files[ref]; ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (r *Registry) cycle(stage string, path []string) {
	logger.CycleDetected(stage, path)
}

func indexOf(stack []string, name string) int {
	for i, s := range stack {
		if s == name {
			return i
		}
	}
	return -1
}
