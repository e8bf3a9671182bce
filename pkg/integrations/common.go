package integrations

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

const redactedValue = "REDACTED"

// NewHTTPClient creates an HTTP client with the given per-request timeout.
// A zero or negative timeout selects DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// EscapeSegment percent-encodes s for use as a single URL path segment.
//
// Unlike [url.PathEscape], every reserved character is encoded, including
// "/", "+", "&", "=", ":" and "@", so a value can never alter the shape of
// the request path. Spaces become "%20".
func EscapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// JoinPath escapes each segment and joins them into an absolute path.
func JoinPath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(EscapeSegment(s))
	}
	return b.String()
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

// scrubbedError hides a secret from an error message while keeping the
// original chain reachable through Unwrap.
type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }

// scrub removes every occurrence of secret, raw or query-escaped, from
// err's message. Transport errors from net/http embed the full request URL.
func scrub(err error, secret string) error {
	if err == nil || secret == "" {
		return err
	}
	msg := err.Error()
	clean := strings.ReplaceAll(msg, url.QueryEscape(secret), redactedValue)
	clean = strings.ReplaceAll(clean, secret, redactedValue)
	if clean == msg {
		return err
	}
	return &scrubbedError{msg: clean, err: err}
}
