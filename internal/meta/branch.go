package meta

import (
	"regexp"
	"sort"
)

// Branch maps keywords to child nodes.
//
// Lookup is exact first. When that fails, the token (after an optional LOCAL or
// GLOBAL) is tried against the value patterns in registration order and the first
// match wins, so the order of silent calls is significant. A pattern match hands the
// matched token to the child as its value. Patterns are anchored to the whole token,
// where a substring match would let HORIZONTALLY through.
type Branch struct {
	node
	children map[string]Node
	patterns []patternChild
	// lenient branches accept unknown keywords as RcOk
	lenient bool
}

type patternChild struct {
	re    *regexp.Regexp
	child Node
}

func newBranch(preamble string) *Branch {
	return &Branch{
		node:     node{preamble: preamble},
		children: make(map[string]Node),
	}
}

// add registers child under keyword and derives its preamble from this branch.
func (b *Branch) add(keyword string, child Node) {
	child.base().preamble = b.preamble + keyword + " "
	b.children[keyword] = child
}

// link lets an already registered child also answer to keyword. The child keeps
// the preamble it was registered with.
func (b *Branch) link(keyword string, child Node) {
	b.children[keyword] = child
}

// silent lets child take a value with its keyword left out, as in CALLOUT VERTICAL
// for CALLOUT ALLOC VERTICAL.
func (b *Branch) silent(pattern string, child Node) {
	b.patterns = append(b.patterns, patternChild{
		re:    regexp.MustCompile("^(?:" + pattern + ")$"),
		child: child,
	})
}

// branch creates and registers a child branch.
func (b *Branch) branch(keyword string) *Branch {
	child := newBranch("")
	b.add(keyword, child)
	return child
}

// Child returns the node registered under keyword.
func (b *Branch) Child(keyword string) (Node, bool) {
	child, ok := b.children[keyword]
	return child, ok
}

// Keywords returns the child keywords in sorted order.
func (b *Branch) Keywords() []string {
	keys := make([]string, 0, len(b.children))
	for k := range b.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse dispatches argv[index] to a child.
func (b *Branch) Parse(argv []string, index int, here Where) Rc {
	size := len(argv)
	if index >= size {
		if b.lenient {
			return RcOk
		}
		return RcFailure
	}

	if child, ok := b.children[argv[index]]; ok {
		n := child.base()
		n.scope = ScopeNone
		offset := 1
		if size-index > 1 {
			switch argv[index+offset] {
			case "LOCAL":
				n.scope = ScopeLocal
				offset++
			case "GLOBAL":
				n.scope = ScopeGlobal
				offset++
			}
			if index+offset >= size {
				return RcFailure
			}
		}
		return child.Parse(argv, index+offset, here)
	}

	if b.lenient {
		return RcOk
	}

	scope, offset := ScopeNone, 0
	switch argv[index] {
	case "LOCAL":
		scope, offset = ScopeLocal, 1
	case "GLOBAL":
		scope, offset = ScopeGlobal, 1
	}
	if index+offset < size {
		for _, pc := range b.patterns {
			if pc.re.MatchString(argv[index+offset]) {
				pc.child.base().scope = scope
				return pc.child.Parse(argv, index+offset, here)
			}
		}
	}

	return RcFailure
}

// Format has no value of its own at branch level.
func (b *Branch) Format(local, global bool) string {
	return ""
}

// Doc walks the children in sorted keyword order.
func (b *Branch) Doc(prefix string) []string {
	var out []string
	for _, key := range b.Keywords() {
		out = append(out, b.children[key].Doc(prefix+" "+key)...)
	}
	return out
}

// Pop clears local overrides throughout the subtree.
func (b *Branch) Pop() {
	for _, child := range b.children {
		child.Pop()
	}
}
