// Package cli implements the quibraries command-line interface.
//
// This package provides commands for querying the libraries.io API by
// platform, project, repository, owner and user, for searching projects, and
// for managing release subscriptions. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - platforms, project, search: package lookups
//   - repo, owner, user: repository and account lookups
//   - subscriptions: list and manage release notifications
//   - browse: page through a result set interactively
//   - config: locate and create the config file
//
// # Output
//
// Results are printed as JSON by default, or as a table with --output table.
// Paginated commands fetch one page unless --all is given.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes every request URL with the API key redacted. Loggers are passed
// through context.Context.
//
// # Example
//
//	import "github.com/quibraries/quibraries/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short timestamps
// such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a multi-request command took.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g.
// "Fetched 250 records in 3 pages (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for commands to retrieve.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
