// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI E-utilities esearch endpoint and collects
// matching PubMed identifiers across result pages.
package eutils

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/pubmed-cooccur/internal/httputil"
	"github.com/pdiddy/pubmed-cooccur/internal/query"
	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// DefaultBaseURL is the public esearch endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// PageSize is the retmax sent with every request.
const PageSize = 100

// Client runs paginated esearch queries. It is not safe for concurrent use;
// requests are issued strictly one after another.
type Client struct {
	HTTP   *http.Client
	Config types.EutilsConfig

	// Now supplies the current time for date-range floors.
	Now func() time.Time

	issued bool
}

// NewClient returns a Client for cfg, filling in the endpoint and database
// defaults.
func NewClient(cfg types.EutilsConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Database == "" {
		cfg.Database = "pubmed"
	}
	return &Client{
		HTTP:   httputil.NewClient(cfg.HTTPConfig),
		Config: cfg,
		Now:    time.Now,
	}
}

// Outcome holds the identifiers found per date range for one gene/disease
// call. When Err is set the call failed as a whole and every requested range
// maps to an empty slice; Err is kept only for reporting.
type Outcome struct {
	IDs map[types.DateRange][]string
	Err error
}

// Result returns the QueryResult for r.
func (o Outcome) Result(r types.DateRange) types.QueryResult {
	return types.NewQueryResult(o.IDs[r])
}

// Search fetches every page of results for gene combined with the disease
// expression, once per range. A non-success HTTP status ends pagination for
// that range and keeps what was collected. Any other failure empties the
// results of all ranges in the call. Failures never propagate.
func (c *Client) Search(ctx context.Context, gene, expr string, ranges []types.DateRange) Outcome {
	out := Outcome{IDs: make(map[types.DateRange][]string, len(ranges))}
	for _, r := range ranges {
		term := query.Term(gene, expr, r, c.now())
		ids, err := c.fetchAll(ctx, term)
		if err != nil {
			return Outcome{IDs: emptyFor(ranges), Err: fmt.Errorf("%s: %w", r, err)}
		}
		out.IDs[r] = ids
	}
	return out
}

func (c *Client) fetchAll(ctx context.Context, term string) ([]string, error) {
	ids := []string{}
	for retstart := 0; ; retstart += PageSize {
		page, ok, err := c.fetchPage(ctx, term, retstart)
		if err != nil {
			return nil, err
		}
		if !ok {
			return ids, nil
		}
		ids = append(ids, page...)
		if len(page) < PageSize {
			return ids, nil
		}
	}
}

// fetchPage returns ok=false for a non-success status.
func (c *Client) fetchPage(ctx context.Context, term string, retstart int) ([]string, bool, error) {
	if err := c.pace(ctx); err != nil {
		return nil, false, err
	}

	resp, err := httputil.Get(ctx, c.HTTP, c.Config.BaseURL, c.params(term, retstart), c.Config.HTTPConfig)
	if err != nil {
		return nil, false, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	}

	ids, err := ParseIDs(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("parsing esearch response: %w", err)
	}
	return ids, true, nil
}

func (c *Client) params(term string, retstart int) url.Values {
	v := url.Values{
		"db":       {c.Config.Database},
		"term":     {term},
		"retmode":  {"xml"},
		"retmax":   {strconv.Itoa(PageSize)},
		"retstart": {strconv.Itoa(retstart)},
	}
	if c.Config.APIKey != "" {
		v.Set("api_key", c.Config.APIKey)
	}
	if c.Config.Email != "" {
		v.Set("email", c.Config.Email)
	}
	if c.Config.Tool != "" {
		v.Set("tool", c.Config.Tool)
	}
	return v
}

// pace waits RequestDelay before every request but the first.
func (c *Client) pace(ctx context.Context) error {
	if !c.issued || c.Config.RequestDelay <= 0 {
		c.issued = true
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.Config.RequestDelay):
		return nil
	}
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func emptyFor(ranges []types.DateRange) map[types.DateRange][]string {
	m := make(map[types.DateRange][]string, len(ranges))
	for _, r := range ranges {
		m[r] = []string{}
	}
	return m
}

// ParseIDs returns the text of every <Id> element below the root element,
// at any depth, in document order. A root <Id> is not an identifier.
func ParseIDs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var ids []string
	sawRoot := false
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			if t.Name.Local != "Id" || depth == 0 {
				depth++
				continue
			}
			var id string
			if err := dec.DecodeElement(&id, &t); err != nil {
				return nil, err
			}
			ids = append(ids, id)
		case xml.EndElement:
			depth--
		}
	}
	if !sawRoot {
		return nil, fmt.Errorf("no XML document in response")
	}
	return ids, nil
}
