package cli

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/logger"
	"lpubmeta/internal/meta"
	"lpubmeta/internal/output"
)

// interpret runs every model of a document, or just one, through a single grammar in
// load order.
func interpret(reg *ldraw.Registry, only string) ([]meta.LineResult, error) {
	names := modelNames(reg)
	if only != "" {
		if !reg.Contains(only) {
			return nil, fmt.Errorf("%w: %s", ldraw.ErrNotFound, only)
		}
		f, _ := reg.Get(only)
		names = []string{f.Name}
	}

	m := meta.New()
	var results []meta.LineResult
	for _, name := range names {
		results = append(results, m.ParseModel(name, reg.Contents(name), false)...)
	}
	return results, nil
}

func (app *App) addParseCommand(rootCmd *cobra.Command) {
	var model string
	var all bool

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Interpret the meta-commands of a document",
		Long: `Interpret every line of a document against the meta-command grammar and
report the action code of each meta-command and the values it set. Lines that do
not parse are logged with their location and make the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}
			results, err := interpret(reg, model)
			if err != nil {
				return err
			}

			failures := 0
			for _, res := range results {
				if res.Rc.IsError() {
					failures++
					logger.ParseFailure(res.Here.ModelName, res.Here.LineNumber, res.Text, res.Rc.String())
				}
				if !all && res.Rc == meta.RcOk && len(res.Set) == 0 {
					continue
				}
				app.printResult(res)
			}
			if failures > 0 {
				return fmt.Errorf("%d lines did not parse", failures)
			}
			return nil
		},
	}
	parseCmd.Flags().StringVar(&model, "model", "", "Interpret only this model")
	parseCmd.Flags().BoolVar(&all, "all", false, "Also list lines that are not meta-commands")
	rootCmd.AddCommand(parseCmd)
}

func (app *App) printResult(res meta.LineResult) {
	p := app.printer
	loc := p.Style(output.SemanticLocation, res.Here.String())
	rc := p.Style(output.SemanticRc, res.Rc.String())
	switch {
	case res.Rc.IsError():
		p.Error(fmt.Sprintf("%s %s %s", loc, rc, res.Text))
	case len(res.Set) == 0:
		p.Println(fmt.Sprintf("%s %s", loc, rc))
	default:
		for _, set := range res.Set {
			p.Println(fmt.Sprintf("%s %s %s", loc, rc, p.Style(output.SemanticValue, set)))
		}
	}
}

// rewrite is a meta-command whose canonical form differs from what the document says.
type rewrite struct {
	Here meta.Where
	Old  string
	New  string
}

// rewrites lists the lines that set exactly one value and are not already written the
// way the grammar restates that value. Blank runs are not a difference.
func rewrites(results []meta.LineResult) []rewrite {
	var out []rewrite
	for _, res := range results {
		if res.Rc.IsError() || len(res.Set) != 1 {
			continue
		}
		if normalize(res.Text) == res.Set[0] {
			continue
		}
		out = append(out, rewrite{Here: res.Here, Old: res.Text, New: res.Set[0]})
	}
	return out
}

func normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// diffLine renders the changes from old to canonical inline, styled as insertions and
// deletions.
func (app *App) diffLine(old, canonical string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(normalize(old), canonical, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString(app.printer.Style(output.SemanticDiffInsert, d.Text))
		case diffmatchpatch.DiffDelete:
			sb.WriteString(app.printer.Style(output.SemanticDiffDelete, d.Text))
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func (app *App) addCheckCommand(rootCmd *cobra.Command) {
	var strict bool

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Show meta-commands that are not written in canonical form",
		Long: `Interpret a document and compare each meta-command that sets a value with the
line the grammar writes for that value. Differences are shown as inline diffs.
With --strict, any difference or parse failure makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}
			results, err := interpret(reg, "")
			if err != nil {
				return err
			}

			failures := 0
			for _, res := range results {
				if res.Rc.IsError() {
					failures++
					app.printResult(res)
				}
			}
			diffs := rewrites(results)
			for _, rw := range diffs {
				app.printer.Println(fmt.Sprintf("%s %s",
					app.printer.Style(output.SemanticLocation, rw.Here.String()), app.diffLine(rw.Old, rw.New)))
			}

			if len(diffs) == 0 && failures == 0 {
				app.printer.Success("All meta-commands are canonical")
				return nil
			}
			app.printer.Warning(fmt.Sprintf("%d lines differ, %d lines did not parse", len(diffs), failures))
			if strict {
				return fmt.Errorf("check failed")
			}
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&strict, "strict", false, "Fail when any line differs or does not parse")
	rootCmd.AddCommand(checkCmd)
}
