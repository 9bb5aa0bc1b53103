// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-cooccur pipeline:
// date-range selectors, disease specs, query results, and stage configuration.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateRange selects a publication-date window for a search.
type DateRange string

const (
	RangeNoLimit DateRange = "no_limit"
	Range10Years DateRange = "10_years"
	Range5Years  DateRange = "5_years"
	Range3Years  DateRange = "3_years"
)

// AllDateRanges lists the selectors in their canonical order.
var AllDateRanges = []DateRange{RangeNoLimit, Range10Years, Range5Years, Range3Years}

// Years returns the window length in years, or 0 for no_limit.
func (r DateRange) Years() int {
	switch r {
	case Range10Years:
		return 10
	case Range5Years:
		return 5
	case Range3Years:
		return 3
	default:
		return 0
	}
}

// Limited reports whether the range carries a publication-date floor.
func (r DateRange) Limited() bool {
	return r.Years() > 0
}

// Floor returns the lower-bound publication year relative to now.
// It returns 0 for no_limit.
func (r DateRange) Floor(now time.Time) int {
	if !r.Limited() {
		return 0
	}
	return now.Year() - r.Years()
}

// Suffix returns the column suffix for the range: "all" or "{N}yr".
func (r DateRange) Suffix() string {
	if !r.Limited() {
		return "all"
	}
	return strconv.Itoa(r.Years()) + "yr"
}

func (r DateRange) String() string { return string(r) }

// ParseDateRange converts a selector name to a DateRange.
func ParseDateRange(s string) (DateRange, error) {
	s = strings.TrimSpace(s)
	for _, r := range AllDateRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q (want one of no_limit, 10_years, 5_years, 3_years)", s)
}

// ParseDateRanges parses a list of selector names, dropping duplicates while
// keeping first-seen order. An empty selection is an error.
func ParseDateRanges(names []string) ([]DateRange, error) {
	seen := make(map[DateRange]bool)
	var ranges []DateRange
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		r, err := ParseDateRange(n)
		if err != nil {
			return nil, err
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no date range selected")
	}
	return ranges, nil
}
