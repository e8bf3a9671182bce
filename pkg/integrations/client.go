package integrations

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/quibraries/quibraries/pkg/errors"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 32 << 20

// Credential is an API key attached to every request as a query parameter.
type Credential struct {
	Param string // Query parameter name (e.g., "api_key")
	Value string // Secret value; never logged
}

// Config holds the immutable settings of a Client.
type Config struct {
	BaseURL    string            // Required; no trailing slash needed
	Credential Credential        // Attached to every request
	Headers    map[string]string // Default headers applied to all requests
	HTTPClient *http.Client      // Optional; NewHTTPClient(Timeout) when nil
	Timeout    time.Duration     // Used only when HTTPClient is nil
	Logger     *log.Logger       // Optional; discards output when nil
}

// Client executes authenticated requests against a single REST API.
//
// A Client holds no mutable state after construction: the credential,
// base URL, headers and transport settings are fixed. All methods are safe
// for concurrent use by multiple goroutines, and every call builds its own
// request and response objects.
type Client struct {
	http    *http.Client
	baseURL string
	cred    Credential
	headers map[string]string
	logger  *log.Logger
}

// NewClient creates a Client from cfg.
// Headers are copied so later changes to cfg.Headers do not leak in.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(cfg.Timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		http:    hc,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		cred:    cfg.Credential,
		headers: maps.Clone(cfg.Headers),
		logger:  logger,
	}
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request and returns the raw response body on a 2xx status.
//
// The path must already be percent-encoded. The credential is added to a
// copy of query, so the caller's values are never modified.
//
// Errors:
//   - [errors.ErrCodeTimeout] when the client timeout or ctx deadline expired
//   - [errors.ErrCodeNetwork] for other transport failures (DNS, reset, cancel)
//   - *[errors.RemoteError] for any non-2xx status, with the body attached
func (c *Client) Do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	full := c.url(path, query, false)
	redacted := c.url(path, query, true)

	req, err := http.NewRequestWithContext(ctx, method, full, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	id := uuid.NewString()
	start := time.Now()
	c.logger.Debug("request", "id", id, "method", method, "url", redacted)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, scrub(err, c.cred.Value), "%s %s", method, redacted)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, scrub(err, c.cred.Value), "%s %s", method, redacted)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "read body of %s %s", method, redacted)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read body of %s %s", method, redacted)
	}

	c.logger.Debug("response", "id", id, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, &errors.RemoteError{
			Method:     method,
			URL:        redacted,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return body, nil
}

func (c *Client) url(path string, query url.Values, redact bool) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if c.cred.Param != "" {
		val := c.cred.Value
		if redact {
			val = redactedValue
		}
		q.Set(c.cred.Param, val)
	}

	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func checkStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return fmt.Errorf("status %d", code)
}
