package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lpubmeta/internal/output"
)

func (app *App) addDocumentCommands(rootCmd *cobra.Command) {
	loadCmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a document and list its models",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}

			doc := reg.Metadata()
			kind := "LDR"
			if reg.IsMpd() {
				kind = "MPD"
			}
			app.printer.Heading(fmt.Sprintf("%s (%s)", doc.FileName, kind))
			if doc.Name != "" || doc.Author != "" {
				app.printer.Info(fmt.Sprintf("Name: %s  Author: %s  Category: %s", doc.Name, doc.Author, doc.Category))
			}
			if doc.Description != "" {
				app.printer.Info(fmt.Sprintf("%s, %d pieces", doc.Description, doc.Pieces))
			}

			t := output.NewTable("MODEL", "LINES", "LEVEL", "SUBMODEL", "UNOFFICIAL")
			for _, name := range modelNames(reg) {
				t.AddRow(name,
					strconv.Itoa(reg.Size(name)),
					strconv.Itoa(reg.Level(name)),
					strconv.FormatBool(reg.IsSubmodel(name)),
					strconv.FormatBool(reg.IsUnofficialPart(name)))
			}
			app.printer.Table(t)
			return nil
		},
	}

	var out string
	var dryRun bool
	saveCmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Rewrite meta-commands in canonical form and save the document",
		Long: `Load a document, replace every meta-command that is not written in canonical
form (see lpub check) and save it, in place or to --output. Multi-part documents
are written whole; for separate files only the models that changed are written.`,
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

			changes := rewrites(results)
			for _, rw := range changes {
				if err := reg.ReplaceLine(rw.Here.ModelName, rw.Here.LineNumber, rw.New); err != nil {
					return err
				}
				app.printer.Println(fmt.Sprintf("%s %s",
					app.printer.Style(output.SemanticLocation, rw.Here.String()), app.diffLine(rw.Old, rw.New)))
			}
			if dryRun {
				app.printer.Info(fmt.Sprintf("%d lines would change", len(changes)))
				return nil
			}

			path := out
			if path == "" {
				path = args[0]
			}
			res, err := reg.Save(path)
			for _, f := range res.Written {
				app.printer.Success("Wrote " + f)
			}
			if err != nil {
				return err
			}
			if len(res.Written) == 0 {
				app.printer.Info("Nothing to write")
			}
			return nil
		},
	}
	saveCmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of the input")
	saveCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without writing")

	rootCmd.AddCommand(loadCmd, saveCmd)
}
