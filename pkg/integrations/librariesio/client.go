package librariesio

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quibraries/quibraries/pkg/buildinfo"
	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations"
)

// DefaultBaseURL is the root of the public libraries.io API.
const DefaultBaseURL = "https://libraries.io/api"

// credentialParam is the query parameter that carries the API key.
const credentialParam = "api_key"

// Client provides access to the libraries.io search and subscription APIs.
//
// Each Client owns exactly one API key. Two clients with different keys
// never share credentials, and a single Client may be used by any number of
// goroutines at once. Every method performs at most one HTTP request.
type Client struct {
	tr     *integrations.Client
	logger *log.Logger
}

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at a different API root, such as a test
// server or a self-hosted mirror.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithHTTPClient sets the underlying HTTP client. WithTimeout is ignored
// when this is set.
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.httpClient = hc } }

// WithTimeout sets the per-request timeout. Defaults to [integrations.DefaultTimeout].
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithLogger sets the logger for request tracing at debug level.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// NewClient creates a Client bound to apiKey.
//
// An empty or malformed key, or a base URL that is not http(s), fails with
// [errors.ErrCodeConfiguration]. NewClient does not read the environment;
// callers that want an environment fallback resolve the key themselves.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: "quibraries/" + buildinfo.Version,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := errors.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if err := errors.ValidateURL(o.baseURL); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	tr := integrations.NewClient(integrations.Config{
		BaseURL:    o.baseURL,
		Credential: integrations.Credential{Param: credentialParam, Value: apiKey},
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": o.userAgent,
		},
		HTTPClient: o.httpClient,
		Timeout:    o.timeout,
		Logger:     o.logger,
	})
	return &Client{tr: tr, logger: o.logger}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.tr.BaseURL() }

// Do builds, sends and normalizes one request for op.
//
// Invalid arguments fail with [errors.ErrCodeInvalidArgument] before any
// network I/O. The typed methods on Client are thin wrappers around Do.
func (c *Client) Do(ctx context.Context, op Operation, args Args) (Result, error) {
	req, err := Build(op, args)
	if err != nil {
		return Result{}, err
	}
	return c.send(ctx, req)
}

// Paginate returns a fresh Pager over op, starting at args.Page (or 1).
//
// Arguments are validated immediately so a bad call fails here rather than
// on the first Next. op must be a list-shaped operation.
func (c *Client) Paginate(op Operation, args Args) (*Pager, error) {
	if !op.Paged() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "operation %q is not paginated", op)
	}
	if _, err := Build(op, args); err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, page int) (Result, error) {
		a := args
		a.Page = page
		return c.Do(ctx, op, a)
	}
	return NewPager(fetch, args.Page), nil
}

func (c *Client) send(ctx context.Context, req Request) (Result, error) {
	body, err := c.tr.Do(ctx, req.Method(), req.Path(), req.Query())
	if err != nil {
		return Result{}, err
	}
	res, err := Normalize(body)
	if err != nil {
		c.logger.Debug("malformed response", "op", req.Op(), "bytes", len(body), "err", err)
		return Result{}, err
	}
	return res, nil
}
