package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"lpubmeta/internal/meta"
)

func (app *App) addDocCommand(rootCmd *cobra.Command) {
	var plain bool

	docCmd := &cobra.Command{
		Use:   "doc [keyword]",
		Short: "Show the meta-command grammar",
		Long: `List every accepted meta-command form, grouped by top level keyword. A keyword
argument keeps only the matching sections.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			m := meta.New()
			if plain {
				for _, line := range m.Doc() {
					if filter == "" || strings.Contains(line, strings.ToUpper(filter)) {
						app.printer.Println(line)
					}
				}
				return nil
			}
			app.printer.Markdown(m.DocMarkdown(filter))
			return nil
		},
	}
	docCmd.Flags().BoolVar(&plain, "plain", false, "One line per form, without markdown")
	rootCmd.AddCommand(docCmd)
}
