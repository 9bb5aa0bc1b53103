// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-cooccur/internal/disease"
	"github.com/pdiddy/pubmed-cooccur/internal/eutils"
	"github.com/pdiddy/pubmed-cooccur/internal/table"
	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// --- fake searcher ---

type call struct {
	gene   string
	expr   string
	ranges []types.DateRange
}

type fakeSearcher struct {
	calls []call
	// results keyed by gene then range
	results map[string]map[types.DateRange][]string
	fail    map[string]bool
}

func (f *fakeSearcher) Search(_ context.Context, gene, expr string, ranges []types.DateRange) eutils.Outcome {
	f.calls = append(f.calls, call{gene: gene, expr: expr, ranges: ranges})
	out := eutils.Outcome{IDs: map[types.DateRange][]string{}}
	if f.fail[gene] {
		for _, r := range ranges {
			out.IDs[r] = []string{}
		}
		out.Err = fmt.Errorf("boom")
		return out
	}
	for _, r := range ranges {
		out.IDs[r] = f.results[gene][r]
	}
	return out
}

func cancerSpec() []types.DiseaseSpec {
	return []types.DiseaseSpec{{Name: "Cancer", Aliases: []string{"breast cancer", "tumor"}}}
}

// --- Columns ---

func TestColumns(t *testing.T) {
	tests := []struct {
		name   string
		ranges []types.DateRange
		want   []string
	}{
		{
			name:   "no_limit only is unsuffixed",
			ranges: []types.DateRange{types.RangeNoLimit},
			want:   []string{"Cancer_PMIDs", "Cancer_Counts"},
		},
		{
			name:   "multiple ranges are suffixed",
			ranges: []types.DateRange{types.RangeNoLimit, types.Range5Years},
			want:   []string{"Cancer_PMIDs_all", "Cancer_Counts_all", "Cancer_PMIDs_5yr", "Cancer_Counts_5yr"},
		},
		{
			name:   "single limited range is suffixed",
			ranges: []types.DateRange{types.Range3Years},
			want:   []string{"Cancer_PMIDs_3yr", "Cancer_Counts_3yr"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Columns(cancerSpec(), tt.ranges) {
				got = append(got, c.PMIDs, c.Counts)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnsDiseaseThenRangeOrder(t *testing.T) {
	diseases := []types.DiseaseSpec{{Name: "A", Aliases: []string{"a"}}, {Name: "B", Aliases: []string{"b"}}}
	cols := Columns(diseases, []types.DateRange{types.Range10Years, types.Range3Years})
	require.Len(t, cols, 4)
	assert.Equal(t, "A_PMIDs_10yr", cols[0].PMIDs)
	assert.Equal(t, "A_PMIDs_3yr", cols[1].PMIDs)
	assert.Equal(t, "B_PMIDs_10yr", cols[2].PMIDs)
	assert.Equal(t, "B_Counts_3yr", cols[3].Counts)
}

// --- Run ---

func TestRunEndToEndSingleRow(t *testing.T) {
	specs, err := disease.Parse("Cancer: breast cancer, tumor")
	require.NoError(t, err)

	tbl := table.New([]string{"Gene", "Tissue"}, [][]any{{"BRCA1", "breast"}})
	fs := &fakeSearcher{results: map[string]map[types.DateRange][]string{
		"BRCA1": {types.RangeNoLimit: {"111", "222"}},
	}}

	var buf bytes.Buffer
	summary, err := Run(context.Background(), tbl, fs, Options{Diseases: specs, Ranges: []types.DateRange{types.RangeNoLimit}}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Genes: 1, Queries: 1}, summary)
	assert.Equal(t, []string{"Gene", "Tissue", "Cancer_PMIDs", "Cancer_Counts"}, tbl.Columns)
	assert.Equal(t, []any{"BRCA1", "breast", "111, 222", 2}, tbl.Rows[0])

	require.Len(t, fs.calls, 1)
	assert.Equal(t, "(breast cancer) OR (tumor)", fs.calls[0].expr)
	assert.Contains(t, buf.String(), "Processing Gene: BRCA1 (1/1)")
	assert.Contains(t, buf.String(), "Found 2 related articles")
	assert.Contains(t, buf.String(), "Progress: 100%")
}

func TestRunTruncatesDisplayKeepsCount(t *testing.T) {
	tbl := table.New([]string{"gene"}, [][]any{{"TP53"}})
	fs := &fakeSearcher{results: map[string]map[types.DateRange][]string{
		"TP53": {types.RangeNoLimit: {"1", "2", "3", "4", "5", "6", "7", "8"}},
	}}

	_, err := Run(context.Background(), tbl, fs, Options{Diseases: cancerSpec(), Ranges: []types.DateRange{types.RangeNoLimit}}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "1, 2, 3, 4, 5", tbl.Value(0, "Cancer_PMIDs"))
	assert.Equal(t, 8, tbl.Value(0, "Cancer_Counts"))
}

func TestRunOrderAndFailureIsolation(t *testing.T) {
	diseases := []types.DiseaseSpec{
		{Name: "Cancer", Aliases: []string{"tumor"}},
		{Name: "Obesity", Aliases: []string{"BMI", "adiposity"}},
	}
	ranges := []types.DateRange{types.RangeNoLimit, types.Range5Years}
	tbl := table.New([]string{"Gene"}, [][]any{{"A"}, {"B"}, {"C"}})
	fs := &fakeSearcher{
		results: map[string]map[types.DateRange][]string{
			"A": {types.RangeNoLimit: {"1", "2", "3"}, types.Range5Years: {"3"}},
			"C": {types.RangeNoLimit: {"9"}},
		},
		fail: map[string]bool{"B": true},
	}

	summary, err := Run(context.Background(), tbl, fs, Options{Diseases: diseases, Ranges: ranges}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, Summary{Genes: 3, Queries: 6, Degraded: 2}, summary)

	var order []string
	for _, c := range fs.calls {
		order = append(order, c.gene+":"+c.expr)
	}
	assert.Equal(t, []string{
		"A:(tumor)", "A:(BMI) OR (adiposity)",
		"B:(tumor)", "B:(BMI) OR (adiposity)",
		"C:(tumor)", "C:(BMI) OR (adiposity)",
	}, order)

	assert.Equal(t, 3, tbl.Value(0, "Cancer_Counts_all"))
	assert.Equal(t, 1, tbl.Value(0, "Cancer_Counts_5yr"))
	assert.Equal(t, types.NoResults, tbl.Value(1, "Cancer_PMIDs_all"))
	assert.Equal(t, 0, tbl.Value(1, "Obesity_Counts_5yr"))
	assert.Equal(t, "9", tbl.Value(2, "Cancer_PMIDs_all"))
	assert.Equal(t, types.NoResults, tbl.Value(2, "Cancer_PMIDs_5yr"))
}

func TestRunValidatesBeforeSearching(t *testing.T) {
	tests := []struct {
		name   string
		tbl    *table.Table
		opts   Options
		errMsg string
	}{
		{"missing gene column", table.New([]string{"Symbol"}, [][]any{{"A"}}), Options{Diseases: cancerSpec(), Ranges: []types.DateRange{types.RangeNoLimit}}, "'Gene' or 'gene'"},
		{"no diseases", table.New([]string{"Gene"}, [][]any{{"A"}}), Options{Ranges: []types.DateRange{types.RangeNoLimit}}, "no disease"},
		{"no ranges", table.New([]string{"Gene"}, [][]any{{"A"}}), Options{Diseases: cancerSpec()}, "no date range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeSearcher{}
			_, err := Run(context.Background(), tt.tbl, fs, tt.opts, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.errMsg)
			assert.Empty(t, fs.calls)
		})
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := &fakeSearcher{}
	_, err := Run(ctx, table.New([]string{"Gene"}, [][]any{{"A"}}), fs, Options{Diseases: cancerSpec(), Ranges: []types.DateRange{types.RangeNoLimit}}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.calls)
}

// --- against an httptest esearch server ---

func TestRunWithEutilsClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<eSearchResult><Count>2</Count><IdList><Id>111</Id><Id>222</Id></IdList></eSearchResult>`)
	}))
	defer ts.Close()

	c := eutils.NewClient(types.EutilsConfig{BaseURL: ts.URL})
	c.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	dir := t.TempDir()
	tbl := table.New([]string{"Gene", "Notes"}, [][]any{{"BRCA1", "keep me"}})
	_, err := Run(context.Background(), tbl, c, Options{Diseases: cancerSpec(), Ranges: []types.DateRange{types.RangeNoLimit}}, &bytes.Buffer{})
	require.NoError(t, err)

	out := filepath.Join(dir, "out.xlsx")
	require.NoError(t, table.Write(tbl, out))
	back, err := table.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []any{"BRCA1", "keep me", "111, 222", 2}, back.Rows[0])
}
