package spapi

import (
	"context"
)

// Pagination defaults. Page sizes above MaxPageSize are clamped because the
// server rejects larger pages.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationClient fetches one page of typed resources from a list endpoint.
// Every resource client implements this for its item type.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ListResponse[T], error)
}

// PaginationOptions tunes the page-draining helpers.
type PaginationOptions struct {
	// PageSize overrides the page size for each request.
	PageSize int
	// MaxPages stops after this many pages; zero means no limit.
	MaxPages int
}

// DefaultPaginationOptions returns the default options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{PageSize: DefaultPageSize}
}

// PageIterator lazily walks a paginated list endpoint, fetching pages on
// demand as items are consumed. It is forward-only and not restartable: a
// fresh iterator starts a fresh cursor.
//
// The sole termination signal is a short page (fewer items than the
// requested page size); server-side total counters are ignored.
type PageIterator[T any] struct {
	ctx      context.Context
	client   PaginationClient[T]
	path     string
	params   *QueryParams
	pageSize int

	page   int
	buffer []T
	index  int
	done   bool
	err    error
}

// NewPageIterator creates an iterator over the given list endpoint. Caller
// pagination params take precedence: a caller-supplied page size is used
// (clamped to MaxPageSize) and a caller-supplied page number becomes the
// starting cursor; the iterator still drives the loop from there.
func NewPageIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PageIterator[T] {
	params = params.Clone()

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	startPage := params.PageNumber
	if startPage <= 0 {
		startPage = 1
	}

	return &PageIterator[T]{
		ctx:      ctx,
		client:   client,
		path:     path,
		params:   params,
		pageSize: pageSize,
		page:     startPage,
	}
}

// HasNext reports whether another item is available, fetching the next page
// if the buffer is exhausted. A fetch error makes HasNext return true so the
// caller observes the error from Next.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return true
	}

	if it.index < len(it.buffer) {
		return true
	}

	if it.done {
		return false
	}

	it.fetchNextPage()

	return it.err != nil || it.index < len(it.buffer)
}

// Next returns the next item. It returns ErrNoMoreItems once the sequence is
// exhausted, or the underlying fetch error if a page request failed; items
// yielded before a failure remain valid.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.err != nil {
		return zero, it.err
	}

	if it.index >= len(it.buffer) {
		if it.done {
			return zero, ErrNoMoreItems
		}

		it.fetchNextPage()

		if it.err != nil {
			return zero, it.err
		}

		if it.index >= len(it.buffer) {
			return zero, ErrNoMoreItems
		}
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the remaining items into a slice.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to each remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

// fetchNextPage requests the page at the current cursor and refills the
// buffer. A page shorter than the requested size ends the sequence.
func (it *PageIterator[T]) fetchNextPage() {
	params := it.params.Clone()
	params.PageNumber = it.page
	params.PageSize = it.pageSize

	response, err := it.client.ListWithPath(it.ctx, it.path, params)
	if err != nil {
		it.err = err

		return
	}

	it.buffer = response.Data
	it.index = 0
	it.page++

	if len(response.Data) < it.pageSize {
		it.done = true
	}
}

// FetchAllPages collects every item from a paginated endpoint.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	params = params.Clone()
	if options != nil && options.PageSize > 0 {
		params.PageSize = options.PageSize
	}

	iterator := NewPageIterator(ctx, client, path, params)

	if options == nil || options.MaxPages <= 0 {
		return iterator.All()
	}

	var items []T

	maxItems := options.MaxPages * iterator.pageSize
	for len(items) < maxItems && iterator.HasNext() {
		item, err := iterator.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Page  int
	Err   error
}

// StreamPages fetches pages in a goroutine and delivers them on the returned
// channel. The channel is closed after the last page, after an error (sent
// as the final result), or when ctx is done.
func StreamPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	params = params.Clone()
	if options != nil && options.PageSize > 0 {
		params.PageSize = options.PageSize
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	maxPages := 0
	if options != nil {
		maxPages = options.MaxPages
	}

	go func() {
		defer close(results)

		page := 1
		for {
			pageParams := params.Clone()
			pageParams.PageNumber = page
			pageParams.PageSize = pageSize

			response, err := client.ListWithPath(ctx, path, pageParams)
			if err != nil {
				select {
				case results <- PageResult[T]{Page: page, Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: response.Data, Page: page}:
			case <-ctx.Done():
				return
			}

			if len(response.Data) < pageSize {
				return
			}

			page++
			if maxPages > 0 && page > maxPages {
				return
			}
		}
	}()

	return results
}
