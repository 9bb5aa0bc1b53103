// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-cooccur/internal/eutils"
	"github.com/pdiddy/pubmed-cooccur/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Preview the PubMed terms and counts for a single gene",
	Long: `Query builds the search terms one run would send for a single gene and
prints them per disease and date range. Without --dry-run it also runs the
searches and prints the counts and first PMIDs.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("gene", "", "gene symbol")
	queryCmd.Flags().String("diseases-file", "", "file of disease lines (Disease: alias1, alias2, ...)")
	queryCmd.Flags().StringArray("disease", nil, "disease line; repeat for several diseases")
	queryCmd.Flags().StringSlice("ranges", nil, "date ranges: no_limit, 10_years, 5_years, 3_years (default no_limit)")
	queryCmd.Flags().Bool("dry-run", false, "print the terms without querying PubMed")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	gene, _ := cmd.Flags().GetString("gene")
	if gene == "" {
		return fmt.Errorf("provide --gene")
	}
	ranges, err := selectedRanges(cmd)
	if err != nil {
		return err
	}
	diseases, err := diseaseSpecs(cmd)
	if err != nil {
		return fmt.Errorf("invalid format for disease conditions: %w", err)
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	client := eutils.NewClient(eutilsConfig())
	now := time.Now()
	for _, d := range diseases {
		expr := query.DiseaseExpression(d.Aliases)
		fmt.Fprintf(os.Stdout, "%s\n", d.Name)
		for _, r := range ranges {
			fmt.Fprintf(os.Stdout, "  [%s] %s\n", r.Suffix(), query.Term(gene, expr, r, now))
		}
		if dryRun {
			continue
		}
		out := client.Search(cmd.Context(), gene, expr, ranges)
		if out.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: search failed, reporting zero results: %v\n", out.Err)
		}
		for _, r := range ranges {
			res := out.Result(r)
			fmt.Fprintf(os.Stdout, "  [%s] %d articles: %s\n", r.Suffix(), res.Count, res.Display())
		}
	}
	return nil
}
