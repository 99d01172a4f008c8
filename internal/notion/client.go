// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// queryPageSize is the largest page size the query endpoint accepts.
const queryPageSize = 100

// Filter is a database query filter. Only select-equality filters are needed.
type Filter struct {
	Property string        `json:"property"`
	Select   *SelectFilter `json:"select,omitempty"`
}

// SelectFilter matches a select option by name.
type SelectFilter struct {
	Equals string `json:"equals"`
}

// SelectEquals builds a filter matching rows whose select property equals value.
func SelectEquals(property, value string) *Filter {
	return &Filter{Property: property, Select: &SelectFilter{Equals: value}}
}

type queryRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Client talks to the Notion API. All calls share one rate limiter. There is
// no retry: failures surface to the caller.
type Client struct {
	baseURL      string
	token        string
	version      string
	client       *http.Client
	limiter      *rate.Limiter
	queryTimeout time.Duration
	pageTimeout  time.Duration
}

// NewClient creates a client from configuration.
func NewClient(cfg *config.NotionConfig) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		version:      cfg.Version,
		client:       &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		queryTimeout: cfg.QueryTimeout,
		pageTimeout:  cfg.PageTimeout,
	}
}

// QueryDatabase returns every row of a database matching filter, following
// pagination. The whole query, all pages included, is bounded by the query
// timeout.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter *Filter) ([]Page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	endpoint := c.baseURL + "/databases/" + url.PathEscape(databaseID) + "/query"
	req := queryRequest{Filter: filter, PageSize: queryPageSize}

	var pages []Page
	for {
		body, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}

		var resp queryResponse
		if err := c.do(ctx, "query", http.MethodPost, endpoint, body, &resp); err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		req.StartCursor = *resp.NextCursor
	}

	logging.Ctx(ctx).Debug().
		Str("database_id", databaseID).
		Int("rows", len(pages)).
		Msg("Database query complete")

	return pages, nil
}

// GetPage fetches a single page, bounded by the page timeout.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	var page Page
	if err := c.do(ctx, "page", http.MethodGet, c.baseURL+"/pages/"+url.PathEscape(pageID), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// do waits for the limiter, performs one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamRequest(op, time.Since(start), err)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s rate limit wait: %w", ErrUpstream, op, err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request failed: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request failed: %w", ErrUpstream, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrUpstream, op, err)
	}
	return nil
}
