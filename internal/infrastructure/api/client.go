// Package api implements the review.Queue contract over the review
// server's REST surface. Retries and timeouts live here, not in the
// engine: cursor reads retry with exponential backoff, writes get a
// deadline but exactly one attempt so a commit is never duplicated.
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
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/recheck-dev/recheck/internal/domain/review"
)

// Client talks to the review server. It implements review.Queue.
type Client struct {
	base       *url.URL
	httpc      *http.Client
	retryCfg   retry.Config
	reqTimeout time.Duration
	userAgent  string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.reqTimeout = d }
}

// WithRetry sets attempt count and initial backoff for cursor reads.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.retryCfg.MaxAttempts = maxAttempts
		}
		if initialDelay > 0 {
			c.retryCfg.InitialDelay = initialDelay
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: missing scheme or host", baseURL)
	}
	c := &Client{
		base:       base,
		httpc:      &http.Client{},
		reqTimeout: 15 * time.Second,
		userAgent:  "recheck/dev",
		retryCfg: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Next steps the queue cursor.
func (c *Client) Next(ctx context.Context, q review.QueueQuery) (*review.QueueStep, error) {
	query := url.Values{}
	query.Set("direction", string(q.Direction))
	if q.AnchorID != "" {
		query.Set("current_id", q.AnchorID)
	}
	if q.SourceID != "" {
		query.Set("source_id", q.SourceID)
	}

	body, err := c.getWithRetry(ctx, "/reviews/next", query)
	if err != nil {
		return nil, fmt.Errorf("queue step: %w", err)
	}
	if err := validatePayload(queueStepSchema, body); err != nil {
		return nil, fmt.Errorf("queue step: %w", err)
	}
	var wire queueStepWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("queue step: decode: %w", err)
	}
	return wire.toDomain(), nil
}

// SourceContent fetches the captured source rendering for a record.
func (c *Client) SourceContent(ctx context.Context, recordID string) (*review.SourceContent, error) {
	body, err := c.getWithRetry(ctx, "/reviews/"+url.PathEscape(recordID)+"/source-content", nil)
	if err != nil {
		return nil, fmt.Errorf("source content %s: %w", recordID, err)
	}
	if err := validatePayload(sourceContentSchema, body); err != nil {
		return nil, fmt.Errorf("source content %s: %w", recordID, err)
	}
	var wire sourceContentWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("source content %s: decode: %w", recordID, err)
	}
	return wire.toDomain(), nil
}

// Commit submits the aggregate outcome for a record. One attempt only.
func (c *Client) Commit(ctx context.Context, recordID string, p review.CommitPayload) error {
	wire := commitWire{
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		DurationMS:      p.DurationMS,
		Corrections:     p.Corrections,
	}
	if _, err := c.put(ctx, "/reviews/"+url.PathEscape(recordID), wire); err != nil {
		return fmt.Errorf("commit %s: %w", recordID, err)
	}
	return nil
}

// Revert resets a committed record to pending.
func (c *Client) Revert(ctx context.Context, recordID string) error {
	if _, err := c.put(ctx, "/reviews/"+url.PathEscape(recordID)+"/revert", nil); err != nil {
		return fmt.Errorf("revert %s: %w", recordID, err)
	}
	return nil
}

// getWithRetry performs a GET with backoff and a per-attempt deadline.
func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	r := retry.New[[]byte](c.retryCfg)
	return r.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return c.doTimed(ctx, http.MethodGet, path, query, nil)
	})
}

// put performs a PUT with a deadline and no retry.
func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doTimed(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) doTimed(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	t := timeout.New[[]byte](timeout.Config{DefaultTimeout: c.reqTimeout})
	return t.Execute(ctx, c.reqTimeout, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, method, path, query, body)
	})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(data), 200)}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
