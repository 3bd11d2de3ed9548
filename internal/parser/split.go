// Package parser tokenizes LDraw lines for the meta-command interpreter and the model registry.
// Geometry lines keep their fixed field layout; comment lines honor double-quoted spans.
package parser

import (
	"errors"
	"strings"
)

var (
	// ErrTruncated is returned when a type 1 line ends before its color and transform fields.
	ErrTruncated = errors.New("truncated part line")

	// ErrUnterminatedQuote is returned when a comment line opens a quoted span it never closes.
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// partFields is the color plus the twelve transform values of a type 1 line.
const partFields = 13

// Split breaks one LDraw line into tokens.
//
// Type 1 lines yield "1", thirteen fields and the remainder of the line as the file name.
// Type 2 to 5 lines are split on blanks. Type 0 lines are split on blanks outside quoted
// spans; quotes are stripped and an escaped quote (\") does not close a span.
// Any other line yields no tokens.
func Split(line string) ([]string, error) {
	p := skipBlanks(line, 0)
	if p == len(line) {
		return nil, nil
	}

	switch {
	case line[p] == '1' && (p+1 == len(line) || isBlank(line[p+1])):
		return splitPart(line, p+1)
	case line[p] >= '2' && line[p] <= '5':
		return strings.Fields(line[p:]), nil
	case line[p] == '0':
		return splitComment(line[p:])
	}
	return nil, nil
}

func splitPart(line string, p int) ([]string, error) {
	argv := []string{"1"}

	p = skipBlanks(line, p)
	if p >= len(line) {
		return argv, ErrTruncated
	}

	for i := 0; i < partFields; i++ {
		start := p
		for p < len(line) && !isBlank(line[p]) {
			p++
		}
		if p >= len(line) {
			return argv, ErrTruncated
		}
		argv = append(argv, line[start:p])
		p = skipBlanks(line, p)
		if p >= len(line) {
			return argv, ErrTruncated
		}
	}

	argv = append(argv, strings.TrimRight(line[p:], " \t\r"))

	// legacy WRITE marker after the line type
	if len(argv) > 1 && argv[1] == "WRITE" {
		argv = append(argv[:1], argv[2:]...)
	}
	return argv, nil
}

func splitComment(chopped string) ([]string, error) {
	var argv []string

	for chopped != "" {
		soq := openQuote(chopped)
		if soq == -1 {
			argv = append(argv, strings.Fields(chopped)...)
			break
		}
		argv = append(argv, strings.Fields(chopped[:soq])...)
		chopped = chopped[soq+1:]

		eoq := openQuote(chopped)
		if eoq == -1 {
			return argv, ErrUnterminatedQuote
		}
		argv = append(argv, chopped[:eoq])
		chopped = chopped[eoq+1:]
	}

	if len(argv) > 1 && argv[0] == "0" && argv[1] == "GHOST" {
		argv = argv[2:]
	}
	return argv, nil
}

// openQuote returns the index of the first double quote not preceded by a backslash, or -1.
func openQuote(s string) int {
	from := 0
	for {
		i := strings.IndexByte(s[from:], '"')
		if i == -1 {
			return -1
		}
		i += from
		if i > 0 && s[i-1] == '\\' {
			from = i + 1
			continue
		}
		return i
	}
}

func skipBlanks(s string, p int) int {
	for p < len(s) && isBlank(s[p]) {
		p++
	}
	return p
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsPartLine reports whether argv is a complete type 1 line.
func IsPartLine(argv []string) bool {
	return len(argv) == 15 && argv[0] == "1"
}
