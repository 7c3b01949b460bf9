package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/metrics"
	"github.com/dharmasatrya/tripplanner/internal/ratelimit"
)

const (
	DefaultUserAgent = "tripplanner/1.0 (+https://github.com/dharmasatrya/tripplanner)"
	DefaultTimeout   = 15 * time.Second

	maxBodyBytes = 4 << 20
)

// ErrDecode marks a 2xx response whose body could not be decoded.
var ErrDecode = errors.New("malformed response body")

type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Code, e.Body)
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *ratelimit.ServiceLimiter
}

// Client is the JSON-over-HTTP plumbing shared by every upstream service.
// It never retries.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.ServiceLimiter
	userAgent string
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   cfg.Limiter,
		userAgent: cfg.UserAgent,
	}
}

func (c *Client) GetJSON(ctx context.Context, service, rawURL string, query url.Values, headers map[string]string, out any) error {
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}
	return c.do(ctx, service, http.MethodGet, rawURL, nil, "", headers, out)
}

func (c *Client) PostJSON(ctx context.Context, service, rawURL string, body any, headers map[string]string, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", service, err)
	}
	return c.do(ctx, service, http.MethodPost, rawURL, data, "application/json", headers, out)
}

func (c *Client) PostForm(ctx context.Context, service, rawURL string, form url.Values, out any) error {
	return c.do(ctx, service, http.MethodPost, rawURL, []byte(form.Encode()), "application/x-www-form-urlencoded", nil, out)
}

func (c *Client) do(ctx context.Context, service, method, rawURL string, body []byte, contentType string, headers map[string]string, out any) error {
	start := time.Now()

	if err := c.limiter.Wait(ctx, service); err != nil {
		metrics.ObserveUpstream(service, "transport", time.Since(start))
		return fmt.Errorf("%s: rate limit wait: %w", service, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", service, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(service, "transport", time.Since(start))
		return fmt.Errorf("%s: %w", service, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveUpstream(service, "transport", time.Since(start))
		return fmt.Errorf("%s: read response: %w", service, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(service, "bad_status", time.Since(start))
		return &StatusError{Service: service, Code: resp.StatusCode, Body: truncate(string(respBody), 256)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			metrics.ObserveUpstream(service, "decode", time.Since(start))
			return fmt.Errorf("%s: %w: %v", service, ErrDecode, err)
		}
	}

	metrics.ObserveUpstream(service, "ok", time.Since(start))
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
