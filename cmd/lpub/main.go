// Package main provides the lpub CLI entry point.
// Build information is set with -ldflags "-X lpubmeta/internal/version.GitCommit=...".
package main

import (
	"os"

	"lpubmeta/cmd/lpub/internal/cli"
	"lpubmeta/internal/output"
)

func main() {
	output.ConfigureGlobal(output.WithWriter(os.Stderr), output.PlainText())

	app := cli.NewApp()
	if err := app.CreateRootCommand().Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
