// Pagination for collections that link to the next page with a
// next.href URL carrying a "start" token.
//
// Example usage:
//
//	pager, err := c.NewIngestionJobsPager(&client.ListIngestionJobsOptions{
//	    JobsPerPage: core.Int64Ptr(50),
//	})
//
//	// Fetch one page at a time
//	for pager.HasNext() {
//	    page, err := pager.GetNext(ctx)
//	    if err != nil { ... }
//	}
//
//	// Fetch all pages
//	all, err := pager.GetAll(ctx)
//
//	// Iterate over jobs
//	for job, err := range pager.Iterator(ctx) {
//	    if err != nil { ... }
//	}
package client

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// ErrNoMorePages is returned by GetNext once the last page has been fetched.
var ErrNoMorePages = errors.New("no more results available")

// pageTokenParam is the query parameter of next.href that carries the token.
const pageTokenParam = "start"

// pageFetcher fetches the page starting at start (nil for the first page)
// and returns its items and the collection's next.href.
type pageFetcher[T any] func(ctx context.Context, start *string) ([]T, *string, error)

// tokenPager walks a token-paginated collection. It is not safe for
// concurrent use.
type tokenPager[T any] struct {
	hasNext   bool
	nextToken *string
	fetch     pageFetcher[T]
}

func newTokenPager[T any](fetch pageFetcher[T]) *tokenPager[T] {
	return &tokenPager[T]{hasNext: true, fetch: fetch}
}

// getNext fetches one page. A failed fetch leaves the pager where it was,
// so the call can be retried.
func (p *tokenPager[T]) getNext(ctx context.Context) ([]T, error) {
	if !p.hasNext {
		return nil, ErrNoMorePages
	}

	items, nextHref, err := p.fetch(ctx, p.nextToken)
	if err != nil {
		return nil, err
	}

	token, err := core.GetQueryParam(nextHref, pageTokenParam)
	if err != nil {
		return nil, fmt.Errorf("extracting next page token: %w", err)
	}
	p.nextToken = token
	p.hasNext = token != nil
	return items, nil
}

func (p *tokenPager[T]) getAll(ctx context.Context) ([]T, error) {
	all := []T{}
	for p.hasNext {
		page, err := p.getNext(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
	return all, nil
}

func (p *tokenPager[T]) iterator(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for p.hasNext {
			page, err := p.getNext(ctx)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range page {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// IngestionJobsPager pages through ListIngestionJobs results.
type IngestionJobsPager struct {
	pager *tokenPager[IngestionJob]
}

// NewIngestionJobsPager returns a pager over ingestion jobs. The pager owns
// the Start parameter, so opts.Start must be nil. A nil opts lists with
// defaults.
func (c *Client) NewIngestionJobsPager(opts *ListIngestionJobsOptions) (*IngestionJobsPager, error) {
	base := ListIngestionJobsOptions{}
	if opts != nil {
		if opts.Start != nil {
			return nil, &core.ParamError{Field: "start", Message: "must not be set when using a pager"}
		}
		base = *opts
	}

	fetch := func(ctx context.Context, start *string) ([]IngestionJob, *string, error) {
		pageOpts := base
		pageOpts.Start = start
		result, err := c.ListIngestionJobs(ctx, &pageOpts)
		if err != nil {
			return nil, nil, err
		}
		var next *string
		if result.Next != nil {
			next = result.Next.Href
		}
		return result.IngestionJobs, next, nil
	}
	return &IngestionJobsPager{pager: newTokenPager(fetch)}, nil
}

// HasNext reports whether another page may be fetched.
func (p *IngestionJobsPager) HasNext() bool {
	return p.pager.hasNext
}

// GetNext fetches the next page of jobs. It returns ErrNoMorePages after the
// last page.
func (p *IngestionJobsPager) GetNext(ctx context.Context) ([]IngestionJob, error) {
	return p.pager.getNext(ctx)
}

// GetAll fetches every remaining page and returns the jobs in order. On error
// no partial result is returned.
func (p *IngestionJobsPager) GetAll(ctx context.Context) ([]IngestionJob, error) {
	return p.pager.getAll(ctx)
}

// Iterator returns an iterator over the remaining jobs across pages.
func (p *IngestionJobsPager) Iterator(ctx context.Context) iter.Seq2[IngestionJob, error] {
	return p.pager.iterator(ctx)
}
