// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate runs the gene x disease x date-range batch: for each gene
// row it searches PubMed once per disease and writes the identifiers and counts
// for every selected range into the row's output columns.
package annotate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-cooccur/internal/eutils"
	"github.com/pdiddy/pubmed-cooccur/internal/query"
	"github.com/pdiddy/pubmed-cooccur/internal/table"
	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// Searcher fetches identifiers for one gene and disease expression across
// date ranges. *eutils.Client implements it.
type Searcher interface {
	Search(ctx context.Context, gene, expr string, ranges []types.DateRange) eutils.Outcome
}

// Options configures a batch.
type Options struct {
	Diseases []types.DiseaseSpec
	Ranges   []types.DateRange
}

// Summary holds counts from a finished batch.
type Summary struct {
	Genes   int
	Queries int

	// Degraded counts searches whose failure was replaced by empty results.
	Degraded int
}

// Validate checks everything that must hold before the first request.
func Validate(tbl *table.Table, opts Options) error {
	if len(opts.Diseases) == 0 {
		return fmt.Errorf("no disease conditions given")
	}
	if len(opts.Ranges) == 0 {
		return fmt.Errorf("no date range selected")
	}
	if _, err := tbl.GeneColumn(); err != nil {
		return err
	}
	return nil
}

// Run annotates tbl in place. Rows are processed in order; within a row,
// diseases in the order given and ranges in selection order. Search failures are
// written as empty results and never abort the batch. Run returns early only
// on invalid input or context cancellation.
func Run(ctx context.Context, tbl *table.Table, s Searcher, opts Options, w io.Writer) (Summary, error) {
	if err := Validate(tbl, opts); err != nil {
		return Summary{}, err
	}
	genes, err := tbl.Genes()
	if err != nil {
		return Summary{}, err
	}

	cols := Columns(opts.Diseases, opts.Ranges)
	for _, c := range cols {
		tbl.AddColumn(c.PMIDs)
		tbl.AddColumn(c.Counts)
	}

	var summary Summary
	total := len(genes)
	for _, g := range genes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "Processing Gene: %s (%d/%d)\n", g.Symbol, g.Index+1, total)
		for _, d := range opts.Diseases {
			fmt.Fprintf(w, "  - Querying Disease: %s, Aliases: %s\n", d.Name, strings.Join(d.Aliases, ", "))

			out := s.Search(ctx, g.Symbol, query.DiseaseExpression(d.Aliases), opts.Ranges)
			summary.Queries++
			if out.Err != nil {
				summary.Degraded++
			}

			for _, c := range cols {
				if c.Disease != d.Name {
					continue
				}
				res := out.Result(c.Range)
				if err := tbl.Set(g.Index, c.PMIDs, res.Display()); err != nil {
					return summary, err
				}
				if err := tbl.Set(g.Index, c.Counts, res.Count); err != nil {
					return summary, err
				}
				fmt.Fprintf(w, "    -> [%s] Found %d related articles\n", c.Range.Suffix(), res.Count)
			}
		}
		summary.Genes++
		fmt.Fprintf(w, "Progress: %d%%\n", summary.Genes*100/total)
	}
	return summary, nil
}
