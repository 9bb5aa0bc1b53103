// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// DisplayLimit is the number of identifiers kept in the textual PMIDs cell.
const DisplayLimit = 5

// NoResults is written to the PMIDs cell when a search found nothing.
const NoResults = "No PMIDs Found"

// DiseaseSpec is a disease name and the aliases OR'ed together in a query.
type DiseaseSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// GeneRow identifies one input record by its row index and gene symbol.
// Output cells for the row live in the table it was read from.
type GeneRow struct {
	Index  int    `json:"index" yaml:"index"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// QueryResult holds the identifiers found for one (gene, disease, range)
// triple in server order. Count is always len(IDs).
type QueryResult struct {
	IDs   []string `json:"ids" yaml:"ids"`
	Count int      `json:"count" yaml:"count"`
}

// NewQueryResult wraps ids and records their full count.
func NewQueryResult(ids []string) QueryResult {
	return QueryResult{IDs: ids, Count: len(ids)}
}

// Display returns the first DisplayLimit identifiers joined by ", ",
// or NoResults when there are none.
func (r QueryResult) Display() string {
	if len(r.IDs) == 0 {
		return NoResults
	}
	ids := r.IDs
	if len(ids) > DisplayLimit {
		ids = ids[:DisplayLimit]
	}
	return strings.Join(ids, ", ")
}
