package shell

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/meta"
	"lpubmeta/internal/output"
)

func init() {
	for _, cmd := range []*Command{
		{Name: "help", Usage: `\help`, Description: "List shell commands", Run: runHelp},
		{Name: "model", Usage: `\model <name>`, Description: "Read typed lines as lines of a model, from line 0", Run: runModel},
		{Name: "pop", Usage: `\pop`, Description: "Drop every LOCAL override", Run: runPop},
		{Name: "settings", Usage: `\settings [keyword]`, Description: "List configured values", Run: runSettings},
		{Name: "doc", Usage: `\doc [keyword]`, Description: "Show the meta-command grammar", Run: runDoc},
		{Name: "load", Usage: `\load <file>`, Description: "Load an LDraw document", Run: runLoad},
		{Name: "sample", Usage: `\sample [name]`, Description: "Load a bundled sample, or list them", Run: runSample},
		{Name: "parse", Usage: `\parse [model]`, Description: "Interpret the meta-commands of every model, or one", Run: runParse},
		{Name: "count", Usage: `\count`, Description: "Count submodel instances and steps", Run: runCount},
		{Name: "models", Usage: `\models`, Description: "List the models of the document", Run: runModels},
		{Name: "show", Usage: `\show <model>`, Description: "Print the lines of a model", Run: runShow},
		{Name: "insert", Usage: `\insert <model> <line> <text>`, Description: "Insert a line before a line number", Run: runInsert},
		{Name: "replace", Usage: `\replace <model> <line> <text>`, Description: "Replace a line", Run: runReplace},
		{Name: "delete", Usage: `\delete <model> <line>`, Description: "Delete a line", Run: runDelete},
		{Name: "save", Usage: `\save [file]`, Description: "Save the document, by default where it was loaded from", Run: runSave},
		{Name: "snapshot", Usage: `\snapshot <file>`, Description: "Write the registry state to a file", Run: runSnapshot},
		{Name: "restore", Usage: `\restore <file>`, Description: "Restore the registry state from a snapshot", Run: runRestore},
	} {
		mustRegister(cmd)
	}
}

func usage(cmd string) error {
	c, _ := Commands.Get(cmd)
	return fmt.Errorf("usage: %s", c.Usage)
}

func runHelp(s *Session, _ []string) error {
	t := output.NewTable("COMMAND", "DESCRIPTION")
	for _, cmd := range Commands.GetAll() {
		t.AddRow(cmd.Usage, cmd.Description)
	}
	s.printer.Heading("Shell commands")
	s.printer.Table(t)
	s.printer.Comment("Any other line is interpreted as an LDraw meta-command.")
	return nil
}

func runModel(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("model")
	}
	s.model = args[0]
	s.line = 0
	s.printer.Info(fmt.Sprintf("Reading lines as %s", s.printer.Style(output.SemanticModel, s.model)))
	return nil
}

func runPop(s *Session, _ []string) error {
	s.meta.Pop()
	s.printer.Success("Local overrides cleared")
	return nil
}

func runSettings(s *Session, args []string) error {
	t := settingsTable(s.meta.Settings(), strings.Join(args, " "))
	if t.Len() == 0 {
		s.printer.Info("No values configured")
		return nil
	}
	s.printer.Table(t)
	return nil
}

func runDoc(s *Session, args []string) error {
	s.printer.Markdown(s.meta.DocMarkdown(strings.Join(args, " ")))
	return nil
}

func runLoad(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("load")
	}
	if err := s.registry.Load(args[0]); err != nil {
		return err
	}
	s.path = args[0]
	s.loaded(args[0])
	return nil
}

func runSample(s *Session, args []string) error {
	if len(args) == 0 {
		names, err := s.samples.List()
		if err != nil {
			return err
		}
		s.printer.Heading("Samples")
		for _, name := range names {
			s.printer.Println("  " + name)
		}
		return nil
	}

	data, err := s.samples.Load(args[0])
	if err != nil {
		return err
	}
	if err := s.registry.Read(s.samples.Path(args[0]), bytes.NewReader(data), time.Now()); err != nil {
		return err
	}
	s.path = ""
	s.loaded(s.samples.Path(args[0]))
	return nil
}

// loaded reports a freshly loaded document and moves typed input to its top model.
func (s *Session) loaded(from string) {
	doc := s.registry.Metadata()
	s.resume()
	s.printer.Success(fmt.Sprintf("Loaded %d models from %s", len(s.registry.SubFileOrder()), from))
	if doc.Description != "" {
		s.printer.Info(fmt.Sprintf("%s (%d pieces)", doc.Description, doc.Pieces))
	}
}

func runParse(s *Session, args []string) error {
	names := s.modelNames()
	if len(args) > 0 {
		names = args[:1]
	}
	if len(names) == 0 {
		return ldraw.ErrNoTopLevel
	}

	failures := 0
	for _, name := range names {
		results, err := s.interpretModel(name)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Rc.IsError() {
				failures++
				s.printer.Error(fmt.Sprintf("%s %s %s",
					s.printer.Style(output.SemanticLocation, res.Here.String()),
					s.printer.Style(output.SemanticRc, res.Rc.String()), res.Text))
			}
		}
	}
	if failures > 0 {
		s.printer.Warning(fmt.Sprintf("%d lines did not parse", failures))
		return nil
	}
	s.printer.Success(fmt.Sprintf("Parsed %d models", len(names)))
	return nil
}

func runCount(s *Session, _ []string) error {
	if s.registry.TopLevelFile() == "" {
		return ldraw.ErrNoTopLevel
	}
	rep := s.registry.Report()
	s.printer.Table(ReportTable(rep))
	for _, c := range rep.Cycles {
		s.printer.Warning(c.Error())
	}
	return nil
}

func runModels(s *Session, _ []string) error {
	names := s.modelNames()
	if len(names) == 0 {
		s.printer.Info("No document loaded")
		return nil
	}
	doc := s.registry.Metadata()
	if doc.Name != "" {
		s.printer.Heading(fmt.Sprintf("%s by %s", doc.Name, doc.Author))
	}
	t := output.NewTable("MODEL", "LINES", "SUBMODEL", "UNOFFICIAL", "MODIFIED")
	for _, name := range names {
		t.AddRow(name,
			strconv.Itoa(s.registry.Size(name)),
			strconv.FormatBool(s.registry.IsSubmodel(name)),
			strconv.FormatBool(s.registry.IsUnofficialPart(name)),
			strconv.FormatBool(s.registry.IsModified(name)))
	}
	s.printer.Table(t)
	return nil
}

func runShow(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("show")
	}
	if !s.registry.Contains(args[0]) {
		return fmt.Errorf("%w: %s", ldraw.ErrNotFound, args[0])
	}
	for i, line := range s.registry.Contents(args[0]) {
		s.printer.Println(fmt.Sprintf("%4d  %s", i, s.printer.Style(output.SemanticComment, line)))
	}
	return nil
}

func lineArgs(cmd string, args []string, withText bool) (string, int, string, error) {
	if len(args) < 2 || (withText && len(args) < 3) {
		return "", 0, "", usage(cmd)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid line number %q", args[1])
	}
	return args[0], n, strings.Join(args[2:], " "), nil
}

func runInsert(s *Session, args []string) error {
	name, n, text, err := lineArgs("insert", args, true)
	if err != nil {
		return err
	}
	if err := s.registry.InsertLine(name, n, text); err != nil {
		return err
	}
	s.printer.Success(fmt.Sprintf("Inserted %s", meta.Where{ModelName: name, LineNumber: n}))
	return nil
}

func runReplace(s *Session, args []string) error {
	name, n, text, err := lineArgs("replace", args, true)
	if err != nil {
		return err
	}
	if err := s.registry.ReplaceLine(name, n, text); err != nil {
		return err
	}
	s.printer.Success(fmt.Sprintf("Replaced %s", meta.Where{ModelName: name, LineNumber: n}))
	return nil
}

func runDelete(s *Session, args []string) error {
	name, n, _, err := lineArgs("delete", args, false)
	if err != nil {
		return err
	}
	if err := s.registry.DeleteLine(name, n); err != nil {
		return err
	}
	s.printer.Success(fmt.Sprintf("Deleted %s", meta.Where{ModelName: name, LineNumber: n}))
	return nil
}

func runSave(s *Session, args []string) error {
	path := s.path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return usage("save")
	}
	res, err := s.registry.Save(path)
	for _, f := range res.Written {
		s.printer.Success("Wrote " + f)
	}
	if err != nil {
		return err
	}
	s.path = path
	return nil
}

func runSnapshot(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("snapshot")
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	snap := s.registry.Snapshot()
	if err := ldraw.WriteSnapshot(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.printer.Success(fmt.Sprintf("Snapshot %s written to %s (%d changed)", snap.ID, args[0], len(snap.Changed)))
	return nil
}

func runRestore(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("restore")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := ldraw.ReadSnapshot(f)
	if err != nil {
		return err
	}
	s.registry.Restore(snap)
	s.resume()
	s.printer.Success(fmt.Sprintf("Restored snapshot %s taken %s", snap.ID, snap.Taken.Format(time.RFC3339)))
	return nil
}

// resume moves typed input to the end of the top level model.
func (s *Session) resume() {
	s.model = s.registry.TopLevelFile()
	if s.model == "" {
		s.model = DefaultModel
	}
	s.line = s.registry.Size(s.model)
}

// modelNames returns the model names in load order, as written in the document.
func (s *Session) modelNames() []string {
	var names []string
	for _, k := range s.registry.SubFileOrder() {
		if f, ok := s.registry.Get(k); ok {
			names = append(names, f.Name)
		}
	}
	return names
}
