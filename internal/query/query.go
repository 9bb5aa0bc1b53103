// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds PubMed boolean search terms from a gene symbol,
// a disease alias list, and an optional publication-date floor.
// Gene and alias text is passed through verbatim.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// CeilingYear is the fixed upper bound of every date clause.
const CeilingYear = 3000

// DiseaseExpression ORs the aliases together: "(a1) OR (a2) ...".
func DiseaseExpression(aliases []string) string {
	parts := make([]string, len(aliases))
	for i, a := range aliases {
		parts[i] = "(" + a + ")"
	}
	return strings.Join(parts, " OR ")
}

// DateClause returns the publication-date filter for r, or "" for no_limit.
func DateClause(r types.DateRange, now time.Time) string {
	if !r.Limited() {
		return ""
	}
	return fmt.Sprintf(`("%d"[Date - Publication] : "%d"[Date - Publication])`, r.Floor(now), CeilingYear)
}

// Term composes the full search term for one gene, disease expression and range.
func Term(gene, expr string, r types.DateRange, now time.Time) string {
	term := fmt.Sprintf("(%s) AND (%s)", expr, gene)
	if clause := DateClause(r, now); clause != "" {
		term += " AND " + clause
	}
	return term
}
