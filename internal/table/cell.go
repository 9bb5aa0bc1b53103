// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Styled is a cell value read from a workbook together with the style it
// carried there, so number and date formats survive a write back to .xlsx.
type Styled struct {
	Value any
	Style *excelize.Style
}

// Plain strips any workbook style from v.
func Plain(v any) any {
	if s, ok := v.(Styled); ok {
		return s.Value
	}
	return v
}

func cellString(v any) string {
	switch s := Plain(v).(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

var isoDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// typedValue converts the raw stored text of a cell to a Go value by cell
// type: numbers to int or float64, booleans to bool, ISO dates to time.Time.
// Everything else stays a string.
func typedValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if raw == "" {
			return ""
		}
		if i, err := strconv.Atoi(raw); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
		return raw
	default:
		return raw
	}
}
