package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lpubmeta/internal/shell"
)

func (app *App) addCountCommand(rootCmd *cobra.Command) {
	countCmd := &cobra.Command{
		Use:   "count <file>",
		Short: "Count submodel instances and steps",
		Long: `Walk a document from its top level model and count how often each submodel is
placed, plain and mirrored, and how many steps it contributes. The report is a
table, or YAML or JSON with --format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}
			rep := reg.Report()

			if format := app.Config.ReportFormat; format != "text" {
				data, err := rep.Encode(format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			doc := rep.Document
			if doc.Description != "" {
				app.printer.Heading(doc.Description)
			}
			if doc.Author != "" {
				app.printer.Info(fmt.Sprintf("%s by %s, %d pieces", doc.FileName, doc.Author, doc.Pieces))
			}
			app.printer.Table(shell.ReportTable(rep))
			for _, c := range rep.Cycles {
				app.printer.Warning(c.Error())
			}
			return nil
		},
	}
	countCmd.Flags().String("format", "", "Report format (text|yaml|json)")
	rootCmd.AddCommand(countCmd)
}
