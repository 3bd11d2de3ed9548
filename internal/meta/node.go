package meta

import (
	"fmt"
	"math"
	"strconv"
)

// Node is one element of the grammar tree. The set of node kinds is closed:
// only this package can implement it.
type Node interface {
	// Parse consumes argv[index:] and returns the action code.
	Parse(argv []string, index int, here Where) Rc
	// Format renders the current value as a complete meta line.
	Format(local, global bool) string
	// Doc lists the accepted syntax, one line per form.
	Doc(prefix string) []string
	// Pop clears every local override beneath the node.
	Pop()
	// Preamble is the keyword path from the root, ending in a blank.
	Preamble() string

	base() *node
}

type node struct {
	preamble string
	rc       Rc
	// qualifier consumed in front of the value by the line being parsed
	scope Scope
}

func (n *node) base() *node { return n }

// Preamble returns the keyword path of the node.
func (n *node) Preamble() string { return n.preamble }

// Global reports whether the last line dispatched here was qualified with GLOBAL.
func (n *node) Global() bool { return n.scope == ScopeGlobal }

func (n *node) format(local, global bool, value string) string {
	scope := ""
	if local {
		scope = "LOCAL "
	} else if global {
		scope = "GLOBAL "
	}
	return n.preamble + scope + value
}

// leaf is a node backed by a value cell.
type leaf[T any] struct {
	node
	Cell[T]
}

// Pop drops the local override.
func (l *leaf[T]) Pop() {
	l.Cell.Pop()
}

func (l *leaf[T]) store(v T, here Where) {
	l.Cell.store(v, here, l.scope)
}

// result returns the configured action code for a successful parse.
func (n *node) result() Rc {
	return n.rc
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64, width, precision int) string {
	return fmt.Sprintf("%*.*f", width, precision, v)
}

// parseFloat accepts finite numbers only; NaN would slip past every range check.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func parseFloats(argv []string) ([]float64, bool) {
	out := make([]float64, len(argv))
	for i, s := range argv {
		v, ok := parseFloat(s)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
