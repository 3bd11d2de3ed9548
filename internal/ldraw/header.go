package ldraw

import "regexp"

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*0\s+Author`),
	regexp.MustCompile(`^\s*0\s+!CATEGORY`),
	regexp.MustCompile(`^\s*0\s+!CMDLINE`),
	regexp.MustCompile(`^\s*0\s+!COLOUR`),
	regexp.MustCompile(`^\s*0\s+!HELP`),
	regexp.MustCompile(`^\s*0\s+!HISTORY`),
	regexp.MustCompile(`^\s*0\s+!KEYWORDS`),
	regexp.MustCompile(`^\s*0\s+!LDRAW_ORG`),
	regexp.MustCompile(`^\s*0\s+LDRAW_ORG`),
	regexp.MustCompile(`^\s*0\s+!LICENSE`),
	regexp.MustCompile(`^\s*0\s+Name`),
	regexp.MustCompile(`^\s*0\s+Official`),
	regexp.MustCompile(`^\s*0\s+Unofficial`),
	regexp.MustCompile(`^\s*0\s+Un-official`),
	regexp.MustCompile(`^\s*0\s+Original LDraw`),
	regexp.MustCompile(`^\s*0\s+~Moved to`),
	regexp.MustCompile(`^\s*0\s+ROTATION`),
}

var (
	startOfFile  = regexp.MustCompile(`^\s*0\s+FILE\s+(.*)$`)
	endOfFile    = regexp.MustCompile(`^\s*0\s+NOFILE\s*$`)
	partLine     = regexp.MustCompile(`^\s*1\s+.*$`)
	subFileLine  = regexp.MustCompile(`^\s*1\s(.+)\s(.+)\.((ldr|LDR)|(mpd|MPD))$`)
	unofficial   = regexp.MustCompile(`^\s*0\s+!?(LDRAW_ORG|Unofficial Part)`)
	nameHeader   = regexp.MustCompile(`^\s*0\s+Name:\s*(.*)$`)
	authorHeader = regexp.MustCompile(`^\s*0\s+Author:\s*(.*)$`)
	category     = regexp.MustCompile(`^\s*0\s+!CATEGORY\s+(.*)$`)

	descriptionLine = regexp.MustCompile(`^\s*0\s+(.+?)\s*$`)
)

// IsHeader reports whether line is one of the standard LDraw file header comments.
func IsHeader(line string) bool {
	for _, re := range headerPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Metadata is the document description taken from the top level model's header.
type Metadata struct {
	FileName    string `json:"file_name" yaml:"file_name" msgpack:"file_name"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty" msgpack:"author"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty" msgpack:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description"`
	Pieces      int    `json:"pieces" yaml:"pieces" msgpack:"pieces"`
}

func captureMetadata(fileName string, contents []string) Metadata {
	md := Metadata{FileName: fileName}
	for i, line := range contents {
		if i == 0 && !IsHeader(line) {
			if m := descriptionLine.FindStringSubmatch(line); m != nil {
				md.Description = m[1]
			}
		}
		switch {
		case md.Name == "" && nameHeader.MatchString(line):
			md.Name = nameHeader.FindStringSubmatch(line)[1]
		case md.Author == "" && authorHeader.MatchString(line):
			md.Author = authorHeader.FindStringSubmatch(line)[1]
		case md.Category == "" && category.MatchString(line):
			md.Category = category.FindStringSubmatch(line)[1]
		}
	}
	return md
}
