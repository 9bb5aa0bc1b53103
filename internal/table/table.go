// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table holds an in-memory gene table and reads and writes it as
// .xlsx, .csv, or .tsv. Input columns are carried through unchanged; result
// columns are appended.
package table

import (
	"fmt"

	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// GeneColumns lists the accepted names of the gene column, in preference order.
var GeneColumns = []string{"Gene", "gene"}

// Table is a header plus rows of cell values. Rows always have one value per
// column.
type Table struct {
	Columns []string
	Rows    [][]any

	index map[string]int
}

// New returns a table with the given header and rows. Short rows are padded
// with empty strings; cells past the header get "Unnamed: N" columns.
func New(columns []string, rows [][]any) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	width := len(t.Columns)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i := len(t.Columns); i < width; i++ {
		t.Columns = append(t.Columns, fmt.Sprintf("Unnamed: %d", i))
	}
	for _, r := range rows {
		row := make([]any, width)
		for i := range row {
			if i < len(r) && r[i] != nil {
				row[i] = r[i]
			} else {
				row[i] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is a column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddColumn appends an empty column and returns its index. An existing column
// of the same name is reused and its cells are cleared.
func (t *Table) AddColumn(name string) int {
	if i, ok := t.index[name]; ok {
		for _, r := range t.Rows {
			r[i] = ""
		}
		return i
	}
	t.Columns = append(t.Columns, name)
	t.index[name] = len(t.Columns) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Columns) - 1
}

// Set assigns a cell by row index and column name.
func (t *Table) Set(row int, column string, v any) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row %d out of range (%d rows)", row, len(t.Rows))
	}
	t.Rows[row][i] = v
	return nil
}

// Value returns a cell by row index and column name, or nil when either is
// out of range.
func (t *Table) Value(row int, column string) any {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][i]
}

// Limit keeps only the first n rows when n is positive.
func (t *Table) Limit(n int) {
	if n > 0 && n < len(t.Rows) {
		t.Rows = t.Rows[:n]
	}
}

// GeneColumn returns the name of the gene column: "Gene" if present,
// otherwise "gene". Matching is case-sensitive.
func (t *Table) GeneColumn() (string, error) {
	for _, c := range GeneColumns {
		if t.HasColumn(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("the table must contain a 'Gene' or 'gene' column")
}

// Genes returns one GeneRow per table row, in row order.
func (t *Table) Genes() ([]types.GeneRow, error) {
	col, err := t.GeneColumn()
	if err != nil {
		return nil, err
	}
	genes := make([]types.GeneRow, len(t.Rows))
	for i := range t.Rows {
		genes[i] = types.GeneRow{Index: i, Symbol: cellString(t.Value(i, col))}
	}
	return genes, nil
}
