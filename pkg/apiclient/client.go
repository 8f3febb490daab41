// Package apiclient provides the single HTTP client every view uses to reach
// the backend. Requests take paths relative to one fixed base endpoint.
// There is no retry and no error translation: transport failures and non-2xx
// responses are returned to the caller as they occur.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
)

const defaultMaxBody int64 = 4_000_000

// Client is safe for concurrent use. Its only state is the fixed base
// configuration and the underlying http.Client.
type Client struct {
	base      string
	userAgent string
	maxBody   int64
	http      *http.Client
	logger    *slog.Logger
}

// New creates a Client from a finalized Config.
func New(cfg *Config, logger *slog.Logger) *Client {
	maxBody := cfg.MaxResponseSizeBytes()
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	return &Client{
		base:      strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		maxBody:   maxBody,
		http:      &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:    logger.With("system", "apiclient"),
	}
}

// BaseURL returns the configured base endpoint.
func (c *Client) BaseURL() string {
	return c.base
}

// URL resolves path against the base endpoint. Exactly one slash separates
// the two regardless of how either side is written.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.base
	}
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// Get issues a GET for path with optional query parameters and decodes the
// JSON response into out. A nil out discards the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.URL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, out)
}

// Post issues a POST for path with in encoded as JSON and decodes the
// response into out.
func (c *Client) Post(ctx context.Context, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}
	return c.do(ctx, http.MethodPost, c.URL(path), body, out)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := middleware.RequestIDFrom(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(
		"backend response",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", middleware.RequestIDFrom(ctx),
	)

	if resp.StatusCode/100 != 2 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, target, err)
	}
	if int64(len(data)) > c.maxBody {
		return fmt.Errorf("%s %s: %w", method, target, ErrResponseTooLarge)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, target, err)
	}
	return nil
}
