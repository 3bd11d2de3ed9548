package ldraw

import (
	"strconv"

	"lpubmeta/internal/parser"
)

// Mirrored reports whether a tokenized type 1 line places its file reflected: the
// determinant of its 3x3 rotation matrix is negative. Any other token list is not mirrored.
func Mirrored(argv []string) bool {
	if !parser.IsPartLine(argv) {
		return false
	}
	var m [9]float64
	for i := range m {
		m[i], _ = strconv.ParseFloat(argv[5+i], 32)
	}
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	return det < 0
}

// isLPub reports whether argv is exactly "0 !LPUB" (or "0 LPUB") followed by words.
func isLPub(argv []string, words ...string) bool {
	if len(argv) != 2+len(words) || argv[0] != "0" {
		return false
	}
	if argv[1] != "!LPUB" && argv[1] != "LPUB" {
		return false
	}
	for i, w := range words {
		if argv[2+i] != w {
			return false
		}
	}
	return true
}

// split tokenizes a model line. Lines that fail to tokenize are treated as having no
// tokens: they are kept in the model but take no part in loading or counting.
func split(line string) []string {
	argv, err := parser.Split(line)
	if err != nil {
		return nil
	}
	return argv
}
