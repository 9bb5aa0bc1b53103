// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// NewClient returns a client honoring cfg.Timeout. A zero timeout keeps the
// transport default, so a hung server blocks until it answers.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Get issues a GET request for base with params encoded as the query string.
// The User-Agent header is set when cfg.UserAgent is non-empty. The caller owns
// the response body. Non-2xx statuses are returned as-is, not as errors.
func Get(ctx context.Context, client *http.Client, base string, params url.Values, cfg types.HTTPConfig) (*http.Response, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing URL %q: %w", base, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	return client.Do(req)
}
