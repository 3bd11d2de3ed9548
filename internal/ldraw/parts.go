package ldraw

import (
	"path/filepath"
	"strings"
)

// Pieces returns the number of real parts placed by the top level model, counting
// through submodels and skipping parts inside PART or PLI BEGIN IGN ... END windows.
func (r *Registry) Pieces() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	top := r.topLevel()
	if top == "" {
		return 0
	}
	return r.pieces(top, []string{top}, make(map[string]int))
}

// pieces counts name once and reuses the total for every later reference through
// done. A reference back into stack counts nothing.
func (r *Registry) pieces(name string, stack []string, done map[string]int) int {
	if n, ok := done[key(name)]; ok {
		return n
	}
	f, ok := r.lookup(name)
	if !ok {
		return 0
	}

	count := 0
	ignore := false
	for _, line := range f.Contents {
		argv := split(line)
		switch {
		case isLPub(argv, "PART", "BEGIN", "IGN"), isLPub(argv, "PLI", "BEGIN", "IGN"):
			ignore = true
		case isLPub(argv, "PART", "END"), isLPub(argv, "PLI", "END"):
			ignore = false
		case len(argv) == 15 && argv[0] == "1" && !ignore:
			ref := argv[14]
			if r.isSubmodel(ref) {
				if indexOf(stack, key(ref)) >= 0 {
					continue
				}
				count += r.pieces(ref, append(stack, key(ref)), done)
			} else if isPartFile(ref) {
				count++
			}
		}
	}
	done[key(name)] = count
	return count
}

func isPartFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".dat", ".ldr", ".mpd":
		return true
	}
	return false
}
