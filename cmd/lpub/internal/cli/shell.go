package cli

import (
	"github.com/spf13/cobra"

	"lpubmeta/internal/logger"
	"lpubmeta/internal/shell"
	"lpubmeta/internal/version"
)

func (app *App) addShellCommand(rootCmd *cobra.Command) {
	shellCmd := &cobra.Command{
		Use:   "shell [file]",
		Short: "Start the interactive meta-command shell",
		Long: `Start an interactive shell. Typed lines are interpreted as meta-commands;
lines starting with a backslash are shell commands (\help lists them).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger.Info("Starting lpub shell", "version", version.Version)

			session := shell.NewSession(app.newRegistry(), app.printer)
			if len(args) == 1 {
				if err := session.Execute(`\load ` + args[0]); err != nil {
					return err
				}
			}
			shell.New(session).Run()
			return nil
		},
	}
	rootCmd.AddCommand(shellCmd)
}
