package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/output"
)

func (app *App) addSnapshotCommand(rootCmd *cobra.Command) {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write and inspect registry snapshots",
	}

	writeCmd := &cobra.Command{
		Use:   "write <file> <snapshot>",
		Short: "Load a document and write its registry state",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}
			reg.CountInstances()

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			snap := reg.Snapshot()
			if err := ldraw.WriteSnapshot(f, snap); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			app.printer.Success(fmt.Sprintf("Snapshot %s: %d models written to %s", snap.ID, len(snap.Files), args[1]))
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Describe a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			snap, err := ldraw.ReadSnapshot(f)
			if err != nil {
				return err
			}
			app.printer.Heading(fmt.Sprintf("Snapshot %s", snap.ID))
			app.printer.Info(fmt.Sprintf("Format %s, taken %s, document %s", snap.Format, snap.Taken.Format(time.RFC3339), snap.Document.FileName))

			t := output.NewTable("MODEL", "LINES", "INSTANCES", "MIRRORED", "STEPS")
			for _, sf := range snap.Files {
				t.AddRow(sf.Name,
					strconv.Itoa(len(sf.Contents)),
					strconv.Itoa(sf.Instances),
					strconv.Itoa(sf.MirrorInstances),
					strconv.Itoa(sf.NumSteps))
			}
			app.printer.Table(t)
			return nil
		},
	}

	snapshotCmd.AddCommand(writeCmd, showCmd)
	rootCmd.AddCommand(snapshotCmd)
}
