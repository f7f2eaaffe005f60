// Package catalog is the HTTP client for the remote product catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"prodsearch/internal/domain"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response body is read.
const maxBody = 8 << 20

// Client talks to a catalog exposing GET /products?search= and
// GET /products/{id}.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a Client for the catalog rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{},
		timeout:   DefaultTimeout,
		userAgent: "prodsearch",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the catalog root.
func (c *Client) BaseURL() string { return c.base.String() }

// Search returns the items matching query in server order. An empty
// slice is a valid result.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Item, error) {
	items, _, err := c.SearchWithID(ctx, query)
	return items, err
}

// SearchWithID is Search that also returns the request id sent to the
// server.
func (c *Client) SearchWithID(ctx context.Context, query string) ([]domain.Item, string, error) {
	u := c.endpoint("products")
	u.RawQuery = url.Values{"search": {query}}.Encode()

	var items []domain.Item
	reqID, err := c.getJSON(ctx, "search", query, u, &items)
	if err != nil {
		return nil, reqID, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, reqID, nil
}

// Get loads one item. A 404 yields an error matching domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Item, error) {
	target := strconv.FormatInt(id, 10)
	u := c.endpoint("products", target)

	var item domain.Item
	if _, err := c.getJSON(ctx, "get", target, u, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ImageURL returns the absolute URL of an item's image, or "" when the
// item has none. Absolute image references are returned unchanged.
func (c *Client) ImageURL(item domain.Item) string {
	if item.Image == "" {
		return ""
	}
	if ref, err := url.Parse(item.Image); err == nil && ref.IsAbs() {
		return item.Image
	}
	return c.endpoint(append([]string{"products"}, strings.Split(strings.TrimLeft(item.Image, "/"), "/")...)...).String()
}

func (c *Client) endpoint(segments ...string) *url.URL {
	u := *c.base
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	return &u
}

func (c *Client) getJSON(ctx context.Context, op, target string, u *url.URL, out any) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := uuid.NewString()
	fail := func(status int, err error) error {
		return &FetchError{Op: op, Target: target, StatusCode: status, RequestID: reqID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return reqID, fail(0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return reqID, fail(0, err)
	}
	defer resp.Body.Close()

	body := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return reqID, fail(resp.StatusCode, fmt.Errorf("failed to open gzip body: %w", err))
		}
		defer zr.Close()
		body = zr
	}
	body = io.LimitReader(body, maxBody)

	if resp.StatusCode == http.StatusNotFound && op == "get" {
		_, _ = io.Copy(io.Discard, body)
		return reqID, fail(resp.StatusCode, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return reqID, fail(resp.StatusCode, fmt.Errorf("unexpected response: %s", msg))
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return reqID, fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return reqID, nil
}
