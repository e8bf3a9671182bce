package librariesio

import (
	"context"
	stderrors "errors"
	"iter"

	"github.com/quibraries/quibraries/pkg/errors"
)

// Done is returned by [Pager.Next] once the result set is exhausted.
// It signals the end of the sequence, not a failure.
var Done = stderrors.New("no more pages")

// FetchFunc retrieves one page of results by 1-based page number.
type FetchFunc func(ctx context.Context, page int) (Result, error)

type pagerState int

const (
	stateReady pagerState = iota
	stateFetching
	stateExhausted
)

// Pager lazily walks a paginated endpoint one page per call to Next.
//
// It starts Ready at its first page. Each Next issues exactly one request;
// a non-empty page advances the cursor, an empty page moves the Pager to
// its terminal Exhausted state. Once exhausted, Next keeps returning Done
// without touching the network. A failed request leaves the cursor where
// it was, so calling Next again retries the same page.
//
// A Pager is not safe for concurrent use; give each goroutine its own.
// To start over, create a new Pager.
type Pager struct {
	fetch FetchFunc
	page  int
	state pagerState
}

// NewPager returns a Pager that starts at startPage (values below 1 mean 1).
func NewPager(fetch FetchFunc, startPage int) *Pager {
	return &Pager{fetch: fetch, page: max(startPage, 1)}
}

// Next returns the next non-empty page, or Done when there are no more.
//
// A response that is a single object instead of a list fails with
// [errors.ErrCodeMalformedResponse].
func (p *Pager) Next(ctx context.Context) (Page, error) {
	if p.state == stateExhausted {
		return nil, Done
	}

	p.state = stateFetching
	res, err := p.fetch(ctx, p.page)
	p.state = stateReady
	if err != nil {
		return nil, err
	}

	list, ok := res.List()
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedResponse,
			"page %d: expected a list, got %s", p.page, res.Kind())
	}
	if len(list) == 0 {
		p.state = stateExhausted
		return nil, Done
	}

	p.page++
	return Page(list), nil
}

// PageNumber returns the page the next call to Next will request.
func (p *Pager) PageNumber() int { return p.page }

// Exhausted reports whether the Pager has reached the end of the results.
func (p *Pager) Exhausted() bool { return p.state == stateExhausted }

// All returns an iterator over the remaining pages.
// Iteration stops after the last page, or after yielding the first error.
//
//	for page, err := range pager.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
func (p *Pager) All(ctx context.Context) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		for {
			page, err := p.Next(ctx)
			if err == Done {
				return
			}
			if !yield(page, err) || err != nil {
				return
			}
		}
	}
}
