package rmapi

import (
	"context"
	"fmt"
)

// DefaultMaxPages bounds pagination against a server whose next cursor
// never runs out.
const DefaultMaxPages = 10000

// PaginationClient fetches one page of a listing.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*Page[T], error)
}

// PaginationOptions configures pagination behavior.
type PaginationOptions struct {
	// MaxPages is the safety cap; reaching it fails with ErrPageLimitExceeded.
	MaxPages int
}

// DefaultPaginationOptions returns default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		MaxPages: DefaultMaxPages,
	}
}

func (o *PaginationOptions) maxPages() int {
	if o == nil || o.MaxPages <= 0 {
		return DefaultMaxPages
	}

	return o.MaxPages
}

// FetchAllPages walks the listing at path from page 1 until the server
// stops advertising a next page, and returns every result in page order.
// Any failure discards what was accumulated.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	iterator := NewPaginationIterator(ctx, client, path, params)
	iterator.options = options

	all, err := iterator.All()
	if err != nil {
		return nil, err
	}

	return all, nil
}

// PaginationIterator yields listing results one at a time, fetching pages
// lazily and strictly in order.
type PaginationIterator[T any] struct {
	ctx     context.Context //nolint:containedctx // iterator is bound to one traversal
	client  PaginationClient[T]
	path    string
	params  *QueryParams
	options *PaginationOptions

	buffer []T
	index  int
	page   int
	done   bool
	err    error
}

// NewPaginationIterator creates a new pagination iterator.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params,
	}
}

// WithOptions sets the pagination options.
func (it *PaginationIterator[T]) WithOptions(options *PaginationOptions) *PaginationIterator[T] {
	it.options = options

	return it
}

// HasNext reports whether Next will return an item or an error.
func (it *PaginationIterator[T]) HasNext() bool {
	for it.index >= len(it.buffer) {
		if it.err != nil {
			return true
		}

		if it.done {
			return false
		}

		it.fetchNextPage()
	}

	return true
}

// Next returns the next item.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if it.index >= len(it.buffer) {
		err := it.err
		it.err = nil
		it.done = true

		return zero, err
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the iterator. On error no results are returned.
func (it *PaginationIterator[T]) All() ([]T, error) {
	all := make([]T, 0)

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach calls fn for each item, stopping at the first error.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// Pages returns the number of pages fetched so far.
func (it *PaginationIterator[T]) Pages() int {
	return it.page
}

func (it *PaginationIterator[T]) fetchNextPage() {
	limit := it.options.maxPages()
	if it.page >= limit {
		it.err = &FetchError{Reason: ReasonPageLimitExceeded, Path: it.path, Limit: limit}

		return
	}

	err := it.ctx.Err()
	if err != nil {
		it.err = fmt.Errorf("paginating %s: %w", it.path, err)

		return
	}

	it.page++

	resp, err := it.client.ListWithPath(it.ctx, it.path, it.params.Clone().WithPage(it.page))
	if err != nil {
		it.err = fmt.Errorf("fetching page %d of %s: %w", it.page, it.path, err)

		return
	}

	it.buffer = resp.Results
	it.index = 0
	it.done = !resp.Info.HasNext()
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Page  int
	Items []T
	Err   error
}

// StreamPages fetches pages in order on a goroutine and delivers them on
// the returned channel, which is closed after the last page or the first
// error. Cancel ctx to stop early.
func StreamPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		limit := options.maxPages()

		for page := 1; ; page++ {
			if page > limit {
				send(ctx, results, PageResult[T]{Page: page, Err: &FetchError{Reason: ReasonPageLimitExceeded, Path: path, Limit: limit}})

				return
			}

			resp, err := client.ListWithPath(ctx, path, params.Clone().WithPage(page))
			if err != nil {
				send(ctx, results, PageResult[T]{Page: page, Err: fmt.Errorf("fetching page %d of %s: %w", page, path, err)})

				return
			}

			if !send(ctx, results, PageResult[T]{Page: page, Items: resp.Results}) {
				return
			}

			if !resp.Info.HasNext() {
				return
			}
		}
	}()

	return results
}

func send[T any](ctx context.Context, results chan<- PageResult[T], result PageResult[T]) bool {
	select {
	case results <- result:
		return true
	case <-ctx.Done():
		return false
	}
}
