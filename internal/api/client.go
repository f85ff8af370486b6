// Package api provides a client for the payments backend REST API.
//
// The read wrappers never return errors: a failed request is logged and
// reported as an empty collection so the dashboard renders zero counts and
// placeholders instead of failing.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/paydash/internal/model"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://127.0.0.1:5000/api"

	defaultTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
	userAgent      = "paydash/1.0"
)

// Backend endpoints, relative to the base URL.
const (
	PathCardholders        = "/cardholders"
	PathTransactions       = "/transactions"
	PathTopMerchants       = "/top-merchants"
	PathFailedTransactions = "/failed-transactions"
)

// Client fetches dashboard data from the payments backend.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used to report masked fetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client rooted at baseURL, e.g. "http://127.0.0.1:5000/api".
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		timeout: defaultTimeout,
		http:    &http.Client{},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// WithBaseURL returns a copy of c rooted at baseURL, keeping its timeout,
// HTTP client and logger.
func (c *Client) WithBaseURL(baseURL string) *Client {
	cp := *c
	cp.baseURL = NewClient(baseURL).baseURL
	return &cp
}

// ValidateBaseURL reports whether raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return nil
}

// FetchCardholders returns all cardholders, or an empty slice on failure.
func (c *Client) FetchCardholders(ctx context.Context) []model.Cardholder {
	return fetchList[model.Cardholder](ctx, c, PathCardholders, "cardholders")
}

// FetchTransactions returns all transactions, or an empty slice on failure.
func (c *Client) FetchTransactions(ctx context.Context) []model.Transaction {
	return fetchList[model.Transaction](ctx, c, PathTransactions, "transactions")
}

// FetchTopMerchants returns merchant revenue summaries, or an empty slice on failure.
func (c *Client) FetchTopMerchants(ctx context.Context) []model.MerchantSummary {
	return fetchList[model.MerchantSummary](ctx, c, PathTopMerchants, "top merchants")
}

// FetchFailedTransactions returns the failed transaction records, or an
// empty slice on failure. Only the length is meaningful to the dashboard.
func (c *Client) FetchFailedTransactions(ctx context.Context) []json.RawMessage {
	return fetchList[json.RawMessage](ctx, c, PathFailedTransactions, "failed transactions")
}

// FetchAll issues the four dashboard requests concurrently. They are
// independent: each one fills its own field and may finish in any order.
func (c *Client) FetchAll(ctx context.Context) model.Dashboard {
	var (
		d  model.Dashboard
		wg sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		d.Cardholders = c.FetchCardholders(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Transactions = c.FetchTransactions(ctx)
	}()
	go func() {
		defer wg.Done()
		d.TopMerchants = c.FetchTopMerchants(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Failed = c.FetchFailedTransactions(ctx)
	}()
	wg.Wait()

	d.FetchedAt = time.Now()
	return d
}

// CreateCardholder posts a new cardholder. Unlike the read wrappers it
// returns the error so the caller can report it.
func (c *Client) CreateCardholder(ctx context.Context, n NewCardholder) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("api: encoding cardholder: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, PathCardholders, bytes.NewReader(body))
	return err
}

// fetchList performs a GET and decodes a JSON array. A failed request or a
// body that is not an array is logged and masked as an empty, non-nil slice.
// Records are decoded one by one: a record with an oddly typed field is kept
// with whatever fields did decode, so it still counts.
func fetchList[T any](ctx context.Context, c *Client, path, what string) []T {
	body, err := c.get(ctx, path)
	if err != nil {
		c.log.Error("error fetching "+what, slog.String("path", path), slog.Any("err", err))
		return []T{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		c.log.Error("error decoding "+what, slog.String("path", path), slog.Any("err", err))
		return []T{}
	}

	out := make([]T, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &out[i]); err != nil {
			c.log.Warn("partially decoded "+what,
				slog.String("path", path),
				slog.Int("index", i),
				slog.Any("err", err))
		}
	}
	return out
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// do performs a request and returns the response body for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	//nolint:gosec // URL is built from the configured base URL
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s (request %s): %w", method, path, reqID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", reqID),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, RequestID: reqID}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}
	return data, nil
}
