package cli

import (
	"github.com/spf13/cobra"

	"lpubmeta/internal/version"
)

func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of lpub with build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			detailed, _ := cmd.Flags().GetBool("detailed")
			if detailed {
				app.printer.Println(version.GetDetailedVersion())
				return
			}
			app.printer.Println(version.GetFormattedVersion())
		},
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)
}
