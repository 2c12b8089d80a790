// Package api is the single point of contact with the career-advice backend.
// Each backend capability has one method; failures are translated into
// NetworkError, HTTPError, AppError or ContractError. Nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/career-counsellor/internal/schemas"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "CareerCounsellor/1.0"

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Options configures the client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // 0 keeps the transport default
	UserAgent  string
	Strict     bool // validate successful bodies against the embedded schemas
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the backend over HTTP JSON.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	strict    bool
}

// New creates a client.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", base)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   parsed,
		http:      httpClient,
		userAgent: userAgent,
		strict:    opts.Strict,
	}, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Request sends a JSON request and decodes the JSON response into out (when non-nil).
// body may be nil for requests without a payload.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	return c.requestJSON(ctx, method, path, body, out, "")
}

func (c *Client) requestJSON(ctx context.Context, method, path string, body, out any, schema string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, path, schema, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// do executes req and translates the outcome into the package's error taxonomy.
func (c *Client) do(req *http.Request, endpoint, schema string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Cancellation is the caller's decision, not a transport failure.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		log.Printf("[api] %s %s failed: %v", req.Method, endpoint, err)
		return &NetworkError{Method: req.Method, URL: req.URL.String(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			Method:  req.Method,
			URL:     req.URL.String(),
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
		log.Printf("[api] %s %s returned %d: %s", req.Method, endpoint, resp.StatusCode, httpErr.Error())
		return httpErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[api] %s %s: failed to read body: %v", req.Method, endpoint, err)
		return &NetworkError{Method: req.Method, URL: req.URL.String(), Cause: err}
	}

	if c.strict && schema != "" {
		if err := schemas.Validate(schema, raw); err != nil {
			log.Printf("[api] %s %s violated %s: %v", req.Method, endpoint, schema, err)
			return &ContractError{Endpoint: endpoint, Cause: err}
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ContractError{Endpoint: endpoint, Cause: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

// errorMessage extracts the backend's "detail" or "error" field from an error body.
// FastAPI validation failures carry detail as a list of {msg} objects.
func errorMessage(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	if len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	return body.Error
}
