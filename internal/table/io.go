// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is a supported table file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unsupported table format %q (want .xlsx, .csv, or .tsv)", filepath.Ext(path))
	}
}

// Read loads a table from path. The first row is the header.
func Read(path string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows [][]any
	switch format {
	case FormatXLSX:
		header, rows, err = readXLSX(path)
	default:
		header, rows, err = readDelimited(path, delimiter(format))
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if header == nil {
		return nil, fmt.Errorf("reading %s: no header row", path)
	}
	return New(header, rows), nil
}

// readXLSX reads the first sheet by stored value rather than display text.
// Cells keep their type and, when they have one, their style.
func readXLSX(path string) ([]string, [][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	styles := make(map[int]*excelize.Style)
	rows := make([][]any, 0, len(raw)-1)
	for r, rec := range raw[1:] {
		row := make([]any, len(rec))
		for c, v := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			row[c] = typedValue(typ, v)

			style, err := cellStyle(f, sheet, cell, styles)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			if style != nil {
				row[c] = Styled{Value: row[c], Style: style}
			}
		}
		rows = append(rows, row)
	}
	return raw[0], rows, nil
}

// cellStyle returns the style of a cell, or nil for the default style.
func cellStyle(f *excelize.File, sheet, cell string, cache map[int]*excelize.Style) (*excelize.Style, error) {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return nil, err
	}
	if s, ok := cache[id]; ok {
		return s, nil
	}
	s, err := f.GetStyle(id)
	if err != nil {
		return nil, err
	}
	cache[id] = s
	return s, nil
}

func readDelimited(path string, comma rune) ([]string, [][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return nil, nil, err
	}

	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		rows = append(rows, row)
	}
	return records[0], rows, nil
}

// Write saves t to path in the format implied by its extension. The file is
// written to a temporary name in the same directory and renamed into place.
func Write(t *Table, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pubmed-cooccur-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	var writeErr error
	switch format {
	case FormatXLSX:
		writeErr = writeXLSX(t, tmp)
	default:
		writeErr = writeDelimited(t, tmp, delimiter(format))
	}
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

const sheetName = "Sheet1"

func writeXLSX(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	styleIDs := make(map[*excelize.Style]int)
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = Plain(v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		for c, v := range row {
			s, ok := v.(Styled)
			if !ok || s.Style == nil {
				continue
			}
			if err := applyStyle(f, c+1, i+2, s.Style, styleIDs); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func applyStyle(f *excelize.File, col, row int, style *excelize.Style, ids map[*excelize.Style]int) error {
	id, ok := ids[style]
	if !ok {
		var err error
		if id, err = f.NewStyle(style); err != nil {
			return fmt.Errorf("copying cell style: %w", err)
		}
		ids[style] = id
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cell, cell, id)
}

func writeDelimited(t *Table, w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			rec[i] = cellString(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func delimiter(f Format) rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}
