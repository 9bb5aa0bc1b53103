// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default
	// in place, which never times out.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-cooccur/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EutilsConfig holds settings for the NCBI E-utilities search client.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the esearch endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Database is the Entrez database queried (default "pubmed").
	Database string `json:"database" yaml:"database"`

	// APIKey is an optional NCBI API key, sent as api_key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email and Tool identify the caller to NCBI when set.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// RequestDelay is a fixed pause between consecutive requests (default 0).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// RunConfig groups the settings of one annotation batch.
type RunConfig struct {
	Eutils EutilsConfig `json:"eutils" yaml:"eutils"`

	// Ranges are the selected date windows, in column order.
	Ranges []DateRange `json:"ranges" yaml:"ranges"`

	// Limit truncates the input to its first N rows when positive (test mode).
	Limit int `json:"limit" yaml:"limit"`
}
