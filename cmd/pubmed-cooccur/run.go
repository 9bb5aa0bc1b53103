// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-cooccur/internal/annotate"
	"github.com/pdiddy/pubmed-cooccur/internal/eutils"
	"github.com/pdiddy/pubmed-cooccur/internal/table"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Annotate a gene spreadsheet with PubMed co-occurrence results",
	Long: `Run reads the gene table (.xlsx, .csv, or .tsv) with a 'Gene' or 'gene'
column, searches PubMed for every gene, disease, and date range, and writes the
table back out with <Disease>_PMIDs and <Disease>_Counts columns appended.

With more than one range, or a range other than no_limit, the columns carry a
suffix: all, 10yr, 5yr, or 3yr. Failed searches are recorded as zero results.
If the output cannot be written, the results are kept in a snapshot file that
the save command can write later.`,
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "gene table to read (.xlsx, .csv, .tsv)")
	cmd.Flags().StringP("output", "o", "", "annotated table to write (default: <input>_pubmed.<ext>)")
	cmd.Flags().String("diseases-file", "", "file of disease lines (Disease: alias1, alias2, ...)")
	cmd.Flags().StringArray("disease", nil, "disease line; repeat for several diseases")
	cmd.Flags().StringSlice("ranges", nil, "date ranges: no_limit, 10_years, 5_years, 3_years (default no_limit)")
	cmd.Flags().Int("limit", 0, "test mode: only process the first N genes")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return fmt.Errorf("no gene list file selected: provide --input")
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutputPath(input)
	}

	ranges, err := selectedRanges(cmd)
	if err != nil {
		return err
	}
	diseases, err := diseaseSpecs(cmd)
	if err != nil {
		return fmt.Errorf("invalid format for disease conditions: %w", err)
	}

	tbl, err := table.Read(input)
	if err != nil {
		return fmt.Errorf("unable to read gene list file: %w", err)
	}
	opts := annotate.Options{Diseases: diseases, Ranges: ranges}
	if err := annotate.Validate(tbl, opts); err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		tbl.Limit(limit)
		fmt.Fprintf(os.Stdout, "Test Mode Enabled: Only processing the first %d genes.\n", limit)
	}

	client := eutils.NewClient(eutilsConfig())
	summary, err := annotate.Run(cmd.Context(), tbl, client, opts, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nBatch summary: %d genes, %d searches\n", summary.Genes, summary.Queries)

	return saveResults(tbl, input, output, os.Stdout)
}

// saveResults writes tbl to output. When that fails the table is kept in a
// snapshot next to output, or in the temp directory, for the save command.
func saveResults(tbl *table.Table, input, output string, w io.Writer) error {
	saveErr := table.Write(tbl, output)
	if saveErr == nil {
		fmt.Fprintf(w, "Results saved to: %s\n", output)
		return nil
	}

	snap := output + ".pending.yaml"
	if err := table.WriteSnapshot(snap, tbl, input, output); err != nil {
		snap = filepath.Join(os.TempDir(), filepath.Base(output)+".pending.yaml")
		if err2 := table.WriteSnapshot(snap, tbl, input, output); err2 != nil {
			return fmt.Errorf("unable to save results: %w (snapshot also failed: %v)", saveErr, err2)
		}
	}
	return fmt.Errorf("unable to save results: %w; results kept in %s (retry with: pubmed-cooccur save --snapshot %s)", saveErr, snap, snap)
}

// defaultOutputPath derives "<dir>/<name>_pubmed<ext>" from the input path.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_pubmed" + ext
}
