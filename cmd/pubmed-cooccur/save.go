// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-cooccur/internal/table"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write a pending results snapshot to a spreadsheet",
	Long: `Save retries the final step of a run whose output could not be written.
It reads the snapshot left by run and writes it to --output, or to the
original destination when --output is not given. The snapshot is removed
after a successful write.`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().String("snapshot", "", "pending results file written by run")
	saveCmd.Flags().StringP("output", "o", "", "table to write (default: the run's original output)")

	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("snapshot")
	if path == "" {
		return fmt.Errorf("provide --snapshot")
	}
	snap, tbl, err := table.ReadSnapshot(path)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = snap.Output
	}
	if output == "" {
		return fmt.Errorf("snapshot has no output path: provide --output")
	}

	if err := table.Write(tbl, output); err != nil {
		return fmt.Errorf("unable to save results: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Results saved to: %s (%d rows)\n", output, tbl.Len())

	if err := os.Remove(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not remove snapshot %s: %v\n", path, err)
	}
	return nil
}
