package embedded

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

// SamplesFS contains the sample LDraw documents.
//
//go:embed models/*.mpd
var SamplesFS embed.FS

// SampleLoader gives access to the embedded sample documents.
type SampleLoader struct{}

// NewSampleLoader creates a new SampleLoader.
func NewSampleLoader() *SampleLoader {
	return &SampleLoader{}
}

// Load returns a sample document by name. The .mpd extension is optional.
func (s *SampleLoader) Load(name string) ([]byte, error) {
	data, err := SamplesFS.ReadFile(path.Join("models", withExt(name)))
	if err != nil {
		return nil, fmt.Errorf("sample model not found: %s", name)
	}
	return data, nil
}

// List returns the sample names without extension, sorted.
func (s *SampleLoader) List() ([]string, error) {
	entries, err := SamplesFS.ReadDir("models")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded samples: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mpd") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".mpd"))
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the virtual path reported for a sample.
func (s *SampleLoader) Path(name string) string {
	return "embedded://models/" + withExt(name)
}

func withExt(name string) string {
	if !strings.HasSuffix(name, ".mpd") {
		name += ".mpd"
	}
	return name
}
