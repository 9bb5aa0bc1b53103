// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-cooccur/internal/table"
)

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "data/genes_pubmed.xlsx", defaultOutputPath("data/genes.xlsx"))
	assert.Equal(t, "genes_pubmed.csv", defaultOutputPath("genes.csv"))
}

func TestSaveResultsWritesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")
	tbl := table.New([]string{"Gene", "Cancer_Counts"}, [][]any{{"BRCA1", 2}})

	var buf bytes.Buffer
	require.NoError(t, saveResults(tbl, "in.csv", out, &buf))
	assert.Contains(t, buf.String(), "Results saved to: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Gene,Cancer_Counts\nBRCA1,2\n", string(data))
}

func TestSaveResultsKeepsSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	// An unsupported extension makes the write fail while the directory
	// stays writable for the snapshot.
	out := filepath.Join(dir, "out.xls")
	tbl := table.New([]string{"Gene", "Cancer_Counts"}, [][]any{{"BRCA1", 2}})

	err := saveResults(tbl, "in.csv", out, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to save results")
	assert.Contains(t, err.Error(), out+".pending.yaml")

	snap, back, err := table.ReadSnapshot(out + ".pending.yaml")
	require.NoError(t, err)
	assert.Equal(t, out, snap.Output)
	assert.Equal(t, tbl.Rows, back.Rows)
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "genes.csv")
	require.NoError(t, os.WriteFile(in, []byte("Gene\nBRCA1\n"), 0o644))
	out := filepath.Join(dir, "out.csv")

	cmd := &cobra.Command{RunE: runRun}
	addRunFlags(cmd)
	require.NoError(t, cmd.Flags().Set("input", in))
	require.NoError(t, cmd.Flags().Set("output", out))
	require.NoError(t, cmd.Flags().Set("disease", "Cancer: tumor"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd.SetContext(ctx)

	err := runRun(cmd, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)
}
