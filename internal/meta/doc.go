package meta

import (
	"strings"
)

// DocMarkdown groups the grammar listing by top-level keyword into a markdown document,
// one section per keyword with its forms in a code block. Keywords are matched against
// filter case-insensitively; an empty filter keeps everything.
func (m *Meta) DocMarkdown(filter string) string {
	var sb strings.Builder
	sb.WriteString("# LPub meta-commands\n")

	filter = strings.ToUpper(filter)
	for _, section := range m.docSections() {
		if filter != "" && !strings.Contains(section, filter) {
			continue
		}
		sb.WriteString("\n## ")
		sb.WriteString(section)
		sb.WriteString("\n\n```\n")
		for _, line := range m.sectionDoc(section) {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}

// docSections names the sections: each !LPUB child, then the other root keywords.
func (m *Meta) docSections() []string {
	var out []string
	for _, key := range m.LPub.Keywords() {
		out = append(out, "!LPUB "+key)
	}
	for _, key := range m.root.Keywords() {
		if key != "!LPUB" {
			out = append(out, key)
		}
	}
	return out
}

func (m *Meta) sectionDoc(section string) []string {
	path := strings.Fields(section)
	n, ok := m.Lookup(path...)
	if !ok {
		return nil
	}
	return n.Doc("0 " + section)
}
