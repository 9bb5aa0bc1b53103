// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import "github.com/pdiddy/pubmed-cooccur/pkg/types"

// Column is the pair of output columns for one disease and date range.
type Column struct {
	Disease string
	Range   types.DateRange
	PMIDs   string
	Counts  string
}

// Columns lists the output columns in disease, then range order. Names carry
// no range suffix when no_limit is the only selected range; otherwise every
// pair is suffixed with the range's Suffix.
func Columns(diseases []types.DiseaseSpec, ranges []types.DateRange) []Column {
	unsuffixed := len(ranges) == 1 && ranges[0] == types.RangeNoLimit
	cols := make([]Column, 0, len(diseases)*len(ranges))
	for _, d := range diseases {
		for _, r := range ranges {
			c := Column{
				Disease: d.Name,
				Range:   r,
				PMIDs:   d.Name + "_PMIDs",
				Counts:  d.Name + "_Counts",
			}
			if !unsuffixed {
				c.PMIDs += "_" + r.Suffix()
				c.Counts += "_" + r.Suffix()
			}
			cols = append(cols, c)
		}
	}
	return cols
}
