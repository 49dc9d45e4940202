// Package trackerapi is the typed client for the job-tracking service that
// owns scraping, enrichment and email delivery. Only the request/response
// shapes observed on the wire are modelled here; everything behind the
// endpoints is the service's business.
package trackerapi

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

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://localhost:3001"
	userAgent      = "Recruitment-Pipeline/0.1 (https://github.com/ryand2626/recruitment-pipeline)"
)

const (
	rateLimitRequests = 5
	rateLimitDuration = time.Second

	defaultTimeout = 30 * time.Second
)

// ErrNotFound reports a 404 from the tracker service.
var ErrNotFound = errors.New("tracker: not found")

type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a tracker service client. An empty baseURL falls back to
// the local development address the service listens on.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetRateLimit overrides the client-side request budget.
func (c *Client) SetRateLimit(perSecond, burst int) {
	if perSecond > 0 && burst > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// doRequest performs an HTTP request against the tracker service (raw, no
// JSON decoding of the response).
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body any) (*http.Response, error) {
	// Rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doJSON executes a request and decodes the response body into out when out
// is non-nil. Non-2xx statuses become errors; the service's {"error": ...}
// shape is surfaced when present.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	resp, err := c.doRequest(ctx, method, endpoint, params, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := checkStatus(resp.StatusCode, b); err != nil {
		return err
	}

	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w (body: %s)", err, string(b))
	}
	return nil
}

// doCheck executes a request and cares only about the status code. The
// trigger endpoints answer 200 or 202 with bodies we do not need.
func (c *Client) doCheck(ctx context.Context, method, endpoint string, params url.Values, body any) error {
	resp, err := c.doRequest(ctx, method, endpoint, params, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return checkStatus(resp.StatusCode, b)
}

func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	if code == http.StatusNotFound {
		return fmt.Errorf("status %d: %w", code, ErrNotFound)
	}
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("api error (%d): %s", code, apiErr.Error)
	}
	return fmt.Errorf("unexpected status %d: %s", code, string(body))
}
