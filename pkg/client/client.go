// Package client checks a published Secret Santa site over HTTP.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxPageSize bounds how much of a page is read.
const maxPageSize = 4 << 20

// Client fetches pages from a published site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the site rooted at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PageStatus is the result of checking one participant page.
type PageStatus struct {
	ID  string
	URL string
	// Current is true when the served page matches the local copy.
	Current bool
	Err     error
}

// PageURL returns the URL of a participant's page.
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id) + ".html"
}

// GetIndex fetches the landing page.
func (c *Client) GetIndex(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, c.baseURL+"/")
	if err != nil {
		return nil, fmt.Errorf("client.GetIndex: %w", err)
	}
	return body, nil
}

// GetPage fetches a participant's page.
func (c *Client) GetPage(ctx context.Context, id string) ([]byte, error) {
	body, err := c.get(ctx, c.PageURL(id))
	if err != nil {
		return nil, fmt.Errorf("client.GetPage: %w", err)
	}
	return body, nil
}

// Check fetches every participant page. local maps ids to the generated
// page; when an entry is present the served page must match it byte for
// byte, which catches a site still serving an older run.
func (c *Client) Check(ctx context.Context, ids []string, local map[string][]byte) []PageStatus {
	out := make([]PageStatus, 0, len(ids))
	for _, id := range ids {
		st := PageStatus{ID: id, URL: c.PageURL(id)}
		body, err := c.GetPage(ctx, id)
		switch {
		case err != nil:
			st.Err = err
		case local[id] == nil:
			st.Current = true
		case bytes.Equal(body, local[id]):
			st.Current = true
		default:
			st.Err = fmt.Errorf("client.Check: %s serves a different generation", id)
		}
		out = append(out, st)
	}
	return out
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	return body, nil
}
