// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

func resetViper(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		setConfigDefaults()
	})
}

func TestSelectedRangesFromEnvironment(t *testing.T) {
	resetViper(t)
	t.Setenv("PUBMED_COOCCUR_RANGES", "no_limit,5_years")
	viper.SetEnvPrefix("PUBMED_COOCCUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cmd := &cobra.Command{}
	addRunFlags(cmd)
	got, err := selectedRanges(cmd)
	require.NoError(t, err)
	assert.Equal(t, []types.DateRange{types.RangeNoLimit, types.Range5Years}, got)
}

func TestSelectedRangesConfigList(t *testing.T) {
	resetViper(t)
	viper.Set("ranges", []string{"10_years", " 3_years "})

	cmd := &cobra.Command{}
	addRunFlags(cmd)
	got, err := selectedRanges(cmd)
	require.NoError(t, err)
	assert.Equal(t, []types.DateRange{types.Range10Years, types.Range3Years}, got)
}

func TestSelectedRangesFlagWins(t *testing.T) {
	resetViper(t)
	viper.Set("ranges", "10_years")

	cmd := &cobra.Command{}
	addRunFlags(cmd)
	require.NoError(t, cmd.Flags().Set("ranges", "5_years,no_limit"))
	got, err := selectedRanges(cmd)
	require.NoError(t, err)
	assert.Equal(t, []types.DateRange{types.Range5Years, types.RangeNoLimit}, got)
}

func TestSelectedRangesUnknown(t *testing.T) {
	resetViper(t)
	viper.Set("ranges", "no_limit,2_years")

	cmd := &cobra.Command{}
	addRunFlags(cmd)
	_, err := selectedRanges(cmd)
	assert.ErrorContains(t, err, `unknown date range "2_years"`)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a,b", "c"}))
	assert.Nil(t, splitList(nil))
}
