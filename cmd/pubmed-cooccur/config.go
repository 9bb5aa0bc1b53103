// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-cooccur/internal/disease"
	"github.com/pdiddy/pubmed-cooccur/internal/eutils"
	"github.com/pdiddy/pubmed-cooccur/internal/secrets"
	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

const defaultUserAgent = "pubmed-cooccur/0.1"

func setConfigDefaults() {
	viper.SetDefault("eutils.base_url", eutils.DefaultBaseURL)
	viper.SetDefault("eutils.database", "pubmed")
	viper.SetDefault("eutils.tool", "pubmed-cooccur")
	viper.SetDefault("eutils.user_agent", defaultUserAgent)
	viper.SetDefault("ranges", []string{string(types.RangeNoLimit)})
}

func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

// eutilsConfig assembles the search client settings from config, flags,
// environment, and loaded secrets.
func eutilsConfig() types.EutilsConfig {
	cfg := types.EutilsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("eutils.timeout"),
			UserAgent: viper.GetString("eutils.user_agent"),
		},
		BaseURL:      viper.GetString("eutils.base_url"),
		Database:     viper.GetString("eutils.database"),
		APIKey:       viper.GetString("eutils.api_key"),
		Email:        viper.GetString("eutils.email"),
		Tool:         viper.GetString("eutils.tool"),
		RequestDelay: viper.GetDuration("eutils.request_delay"),
	}
	secrets.Apply(&cfg, loadedSecrets)
	return cfg
}

// selectedRanges reads --ranges when set, otherwise the configured ranges.
// Configured values may be a list or a comma-separated string, as
// PUBMED_COOCCUR_RANGES=no_limit,5_years is.
func selectedRanges(cmd *cobra.Command) ([]types.DateRange, error) {
	names := viper.GetStringSlice("ranges")
	if cmd.Flags().Changed("ranges") {
		names, _ = cmd.Flags().GetStringSlice("ranges")
	}
	return types.ParseDateRanges(splitList(names))
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

// diseaseSpecs reads --diseases-file, else --disease lines, else the
// configured "diseases" text.
func diseaseSpecs(cmd *cobra.Command) ([]types.DiseaseSpec, error) {
	if path, _ := cmd.Flags().GetString("diseases-file"); path != "" {
		return disease.ParseFile(path)
	}
	if lines, _ := cmd.Flags().GetStringArray("disease"); len(lines) > 0 {
		return disease.Parse(strings.Join(lines, "\n"))
	}
	return disease.Parse(viper.GetString("diseases"))
}
