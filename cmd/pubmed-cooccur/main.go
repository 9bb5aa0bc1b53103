// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-cooccur CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-cooccur/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pubmed-cooccur CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-cooccur",
	Short: "Annotate a gene list with PubMed gene/disease co-occurrence counts",
	Long: `pubmed-cooccur reads a spreadsheet of gene symbols, searches PubMed for
articles mentioning each gene together with a set of disease terms, and writes
the spreadsheet back out with PMIDs and article counts per disease and
publication-date window.

Diseases are given one per line as "Disease: alias1, alias2, ...". All aliases
of a disease are OR'ed together and AND'ed with the gene symbol.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; values may come from the real environment.
		_ = godotenv.Load(".env")

		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pubmed-cooccur.yaml or ~/.config/pubmed-cooccur/config.yaml)")
	pf.String("api-key", "", "NCBI API key (also .secrets/ncbi-api-key)")
	pf.String("email", "", "contact email sent to NCBI (also .secrets/ncbi-email)")
	pf.Duration("timeout", 0, "HTTP request timeout (default: none)")
	pf.Duration("delay", 0, "pause between consecutive PubMed requests")

	bindFlag("eutils.api_key", pf.Lookup("api-key"))
	bindFlag("eutils.email", pf.Lookup("email"))
	bindFlag("eutils.timeout", pf.Lookup("timeout"))
	bindFlag("eutils.request_delay", pf.Lookup("delay"))

	setConfigDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-cooccur")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-cooccur"))
		}
	}

	viper.SetEnvPrefix("PUBMED_COOCCUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
