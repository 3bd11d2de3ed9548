// Package shell provides the interactive meta-command shell.
// Lines typed at the prompt are interpreted as LDraw meta-commands against a live
// grammar; lines starting with a backslash are session commands that load, count and
// save documents.
package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"lpubmeta/internal/data/embedded"
	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/logger"
	"lpubmeta/internal/meta"
	"lpubmeta/internal/output"
)

// ErrUnknownCommand is returned for a backslash command the shell does not know.
var ErrUnknownCommand = errors.New("unknown command")

// DefaultModel names the location of lines typed without a loaded document.
const DefaultModel = "shell"

// Session is the state behind one shell: a grammar, a model registry and the
// location the next typed line is read from.
type Session struct {
	ID string

	meta     *meta.Meta
	registry *ldraw.Registry
	printer  *output.Printer
	samples  *embedded.SampleLoader
	log      *log.Logger

	model string
	line  int
	path  string
}

// NewSession creates a session over registry, printing to printer.
func NewSession(registry *ldraw.Registry, printer *output.Printer) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		meta:     meta.New(),
		registry: registry,
		printer:  printer,
		samples:  embedded.NewSampleLoader(),
		log:      logger.NewStyledLogger("Shell"),
		model:    DefaultModel,
	}
	s.log.Debug("Session started", "session", s.ID)
	return s
}

// Meta returns the grammar the session parses into.
func (s *Session) Meta() *meta.Meta {
	return s.meta
}

// Registry returns the session's model registry.
func (s *Session) Registry() *ldraw.Registry {
	return s.registry
}

// Where returns the location the next typed line is read from.
func (s *Session) Where() meta.Where {
	return meta.Where{ModelName: s.model, LineNumber: s.line}
}

// Execute runs one line of input. Blank lines and %% comments do nothing.
func (s *Session) Execute(input string) error {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "%%") {
		return nil
	}
	if strings.HasPrefix(input, `\`) {
		fields := strings.Fields(input[1:])
		if len(fields) == 0 {
			return fmt.Errorf("%w: \\", ErrUnknownCommand)
		}
		cmd, ok := Commands.Get(fields[0])
		if !ok {
			return fmt.Errorf("%w: \\%s", ErrUnknownCommand, fields[0])
		}
		s.log.Debug("Executing command", "session", s.ID, "command", cmd.Name, "args", fields[1:])
		return cmd.Run(s, fields[1:])
	}
	s.interpret(input)
	return nil
}

// interpret parses one LDraw line at the current location and reports the outcome.
func (s *Session) interpret(line string) {
	here := s.Where()
	res := s.meta.ParseLine(line, here, false)
	s.line++

	loc := s.printer.Style(output.SemanticLocation, fmt.Sprintf("%s:%d", here.ModelName, here.LineNumber))
	rc := s.printer.Style(output.SemanticRc, res.Rc.String())
	switch {
	case res.Rc.IsError():
		s.printer.Error(fmt.Sprintf("%s %s %s", loc, rc, line))
	case len(res.Set) > 0:
		for _, set := range res.Set {
			s.printer.Println(fmt.Sprintf("%s %s %s", loc, rc, s.printer.Style(output.SemanticValue, set)))
		}
	default:
		s.printer.Println(fmt.Sprintf("%s %s", loc, rc))
	}
}

// interpretModel runs every line of a registry model through the grammar.
func (s *Session) interpretModel(name string) ([]meta.LineResult, error) {
	if !s.registry.Contains(name) {
		return nil, fmt.Errorf("%w: %s", ldraw.ErrNotFound, name)
	}
	return s.meta.ParseModel(name, s.registry.Contents(name), true), nil
}

// ReportTable lays out a count report, one row per model.
func ReportTable(rep ldraw.CountReport) *output.Table {
	t := output.NewTable("MODEL", "LEVEL", "INSTANCES", "MIRRORED", "STEPS", "SUBMODEL")
	for _, m := range rep.Models {
		t.AddRow(m.Name,
			strconv.Itoa(m.Level),
			strconv.Itoa(m.Instances),
			strconv.Itoa(m.MirrorInstances),
			strconv.Itoa(m.NumSteps),
			strconv.FormatBool(m.Submodel))
	}
	return t
}

// settingsTable lists configured values whose keyword path contains filter.
func settingsTable(settings []meta.Setting, filter string) *output.Table {
	t := output.NewTable("WHERE", "SETTING")
	filter = strings.ToUpper(filter)
	for _, st := range settings {
		if filter != "" && !strings.Contains(st.Line, filter) {
			continue
		}
		t.AddRow(st.Here.String(), st.Line)
	}
	return t
}
