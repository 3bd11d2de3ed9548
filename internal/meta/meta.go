// Package meta interprets LPub meta-commands: comment lines that configure how steps,
// callouts, parts lists and pages are laid out.
//
// A Meta owns a grammar tree of branches and value cells. Parsing a line walks the tree
// by keyword and either stores a value in a cell or returns an action code the caller
// acts on (a step boundary, the start of a callout, and so on).
package meta

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"lpubmeta/internal/logger"
	"lpubmeta/internal/parser"
)

var (
	mlcadGroupRx = regexp.MustCompile(`^\s*0\s+(MLCAD)\s+(BTG)\s+(.*)$`)
	ldcadGroupRx = regexp.MustCompile(`^\s*0\s+!?(LDCAD)\s+(GROUP_NXT)\s+\[ids=(\d[^\]]*)`)
	leoGroupBgRx = regexp.MustCompile(`(?i)^\s*0\s+!?(LEOCAD)\s+(GROUP)\s+(BEGIN)\s+Group\s+(.*)$`)
	leoGroupEnRx = regexp.MustCompile(`^\s*0\s+!?(LEOCAD)\s+(GROUP)\s+(END)$`)
	viewAngleRx  = regexp.MustCompile(`^\s*0.*\s+(VIEW_ANGLE)\s+.*$`)
)

// Meta is the root of the grammar: the settings of one document.
type Meta struct {
	root *Branch
	log  *log.Logger

	LPub     *LPubMeta
	Step     *Action
	Clear    *Action
	RotStep  *RotStep
	BufExchg *BufExchg
	MLCad    *MLCadMeta
	LDCad    *Action
	LeoCad   *LeoCadMeta
	Synth    *SynthMeta
}

// New builds a fresh grammar with every cell at its default.
func New() *Meta {
	root := newBranch("0 ")
	m := &Meta{
		root: root,
		log:  logger.NewStyledLogger("Meta"),
	}

	m.LPub = newLPubMeta(root)
	m.Step = attach(root, "STEP", NewAction(RcStep))
	m.Clear = attach(root, "CLEAR", NewAction(RcClear))
	m.RotStep = attach(root, "ROTSTEP", NewRotStep())
	m.BufExchg = attach(root, "BUFEXCHG", NewBufExchg())

	mlcad := root.branch("MLCAD")
	mlcad.lenient = true
	m.MLCad = &MLCadMeta{
		Branch:    mlcad,
		SkipBegin: attach(mlcad, "SKIP_BEGIN", NewAction(RcMLCadSkipBegin)),
		SkipEnd:   attach(mlcad, "SKIP_END", NewAction(RcMLCadSkipEnd)),
		Group:     attach(mlcad, "BTG", NewAction(RcMLCadGroup)),
	}

	ldcad := root.branch("LDCAD")
	ldcad.lenient = true
	m.LDCad = attach(ldcad, "GROUP_NXT", NewAction(RcLDCadGroup))

	leocad := root.branch("LEOCAD")
	leocad.lenient = true
	group := leocad.branch("GROUP")
	group.lenient = true
	m.LeoCad = &LeoCadMeta{
		Branch:     leocad,
		GroupBegin: attach(group, "BEGIN", NewAction(RcLeoCadGroupBegin)),
		GroupEnd:   attach(group, "END", NewAction(RcLeoCadGroupEnd)),
	}

	m.Synth = newSynthMeta(root)
	return m
}

// SetLogger replaces the logger parse failures are reported to.
func (m *Meta) SetLogger(l *log.Logger) {
	m.log = l
}

// Parse interprets one line. Lines that are not meta-commands return RcOk.
// When reportErrors is set, failures are logged with their location.
func (m *Meta) Parse(line string, here Where, reportErrors bool) Rc {
	argv, ok := m.tokens(line, here, reportErrors)
	if !ok {
		return RcFailure
	}
	if len(argv) == 0 {
		return RcOk
	}

	if argv[0] == "PLIST" {
		return m.report(m.LPub.Pli.Parse(argv, 1, here), line, here, reportErrors)
	}
	if _, known := m.root.children[argv[0]]; !known {
		return RcOk
	}
	return m.report(m.root.Parse(argv, 0, here), line, here, reportErrors)
}

// tokens applies the legacy rewrites and splits the line, dropping the leading 0.
func (m *Meta) tokens(line string, here Where, reportErrors bool) ([]string, bool) {
	if g := mlcadGroupRx.FindStringSubmatch(line); g != nil {
		return []string{"MLCAD", "BTG", g[3]}, true
	}
	if g := ldcadGroupRx.FindStringSubmatch(line); g != nil {
		return []string{"LDCAD", "GROUP_NXT", g[3]}, true
	}
	if g := leoGroupBgRx.FindStringSubmatch(line); g != nil {
		return []string{"LEOCAD", "GROUP", "BEGIN", g[4]}, true
	}
	if leoGroupEnRx.MatchString(line) {
		return []string{"LEOCAD", "GROUP", "END"}, true
	}

	if viewAngleRx.MatchString(line) {
		line = strings.Replace(line, "VIEW_ANGLE", "CAMERA_ANGLES", 1)
	}

	argv, err := parser.Split(line)
	if err != nil {
		if reportErrors {
			m.log.Error("Malformed line", "model", here.ModelName, "line", here.LineNumber, "error", err)
		}
		return nil, false
	}
	if len(argv) > 0 {
		argv = argv[1:]
	}
	if len(argv) > 0 && argv[0] == "LPUB" {
		argv[0] = "!LPUB"
	}
	return argv, true
}

func (m *Meta) report(rc Rc, line string, here Where, reportErrors bool) Rc {
	if reportErrors && rc.IsError() {
		m.log.Error("Parse failed", "model", here.ModelName, "line", here.LineNumber, "rc", rc, "text", line)
	}
	return rc
}

// Pop clears every local override, as when leaving a callout or step group.
func (m *Meta) Pop() {
	m.root.Pop()
}

// Root returns the top of the grammar tree.
func (m *Meta) Root() *Branch {
	return m.root
}

// Lookup finds the node at a keyword path, such as "!LPUB", "PAGE", "BACKGROUND".
func (m *Meta) Lookup(path ...string) (Node, bool) {
	var n Node = m.root
	for _, kw := range path {
		b, ok := n.(*Branch)
		if !ok {
			return nil, false
		}
		if n, ok = b.children[kw]; !ok {
			return nil, false
		}
	}
	return n, true
}

// Doc lists the whole grammar, one line per accepted form, in keyword order.
func (m *Meta) Doc() []string {
	var out []string
	for _, key := range m.root.Keywords() {
		out = append(out, m.root.children[key].Doc("0 "+key)...)
	}
	return out
}

// Setting is a value cell that has been written by a parsed line.
type Setting struct {
	Node Node
	Here Where
	Line string
}

// Settings returns every configured value cell in keyword order, rendered as the
// line that reproduces it. Action keywords are not settings and are skipped.
func (m *Meta) Settings() []Setting {
	var out []Setting
	walk(m.root, func(n Node) {
		if isAction(n) {
			return
		}
		c, ok := n.(cell)
		if !ok || c.Here().IsZero() {
			return
		}
		out = append(out, Setting{Node: n, Here: c.Here(), Line: Restate(n)})
	})
	return out
}

// Touched returns the value cells last written from here.
func (m *Meta) Touched(here Where) []Node {
	var out []Node
	walk(m.root, func(n Node) {
		if c, ok := n.(cell); ok && c.Here() == here {
			out = append(out, n)
		}
	})
	return out
}

// Restate renders the line that reproduces a cell's active value, with the LOCAL or
// GLOBAL qualifier the line that wrote it carried.
func Restate(n Node) string {
	scope := n.base().scope
	if c, ok := n.(cell); ok {
		scope = c.Scope()
	}
	return n.Format(scope == ScopeLocal, scope == ScopeGlobal)
}

type cell interface {
	Here() Where
	Overridden() bool
	Scope() Scope
}

func isAction(n Node) bool {
	switch n.(type) {
	case *Action, *NoStep, *CalloutBegin, *Insert, *RotStep, *BufExchg, *Sub:
		return true
	}
	return false
}

// walk visits every leaf once, even one linked under a second keyword.
func walk(root Node, fn func(Node)) {
	seen := make(map[Node]bool)
	var visit func(Node)
	visit = func(n Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		b, ok := n.(*Branch)
		if !ok {
			fn(n)
			return
		}
		for _, key := range b.Keywords() {
			visit(b.children[key])
		}
	}
	visit(root)
}
