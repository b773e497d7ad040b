// Package pager provides a paginate-until-exhausted loop shared by the source
// and destination adapters.
//
// Both upstream APIs page through their record sets, one with an explicit
// next-page link, the other with an offset window that ends on a short page.
// All drives either shape; ByOffset adapts the offset style to it.
package pager

import (
	"context"
	"strconv"
)

// Page is one page of results returned by a FetchFunc.
type Page[T any] struct {
	// Items holds the records of this page.
	Items []T
	// Next is the cursor for the following page. Empty means no more pages.
	Next string
	// Done forces the loop to stop after this page even if Next is set.
	Done bool
}

// FetchFunc fetches the page identified by cursor.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// All fetches pages starting at first until the upstream is exhausted and
// returns every item in order. Any page error aborts the walk and nothing
// fetched so far is returned.
func All[T any](ctx context.Context, first string, fetch FetchFunc[T]) ([]T, error) {
	var items []T
	cursor := first

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)

		if page.Done || page.Next == "" {
			return items, nil
		}
		cursor = page.Next
	}
}

// OffsetFunc fetches up to limit items starting at offset.
type OffsetFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// ByOffset turns an offset-window fetch into a FetchFunc. The walk ends on an
// empty page or on a page shorter than pageSize. Cursors are decimal offsets;
// the first cursor should be strconv.Itoa(start).
func ByOffset[T any](pageSize int, fetch OffsetFunc[T]) FetchFunc[T] {
	return func(ctx context.Context, cursor string) (Page[T], error) {
		offset, err := strconv.Atoi(cursor)
		if err != nil {
			return Page[T]{}, err
		}

		items, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return Page[T]{}, err
		}

		if len(items) == 0 || len(items) < pageSize {
			return Page[T]{Items: items, Done: true}, nil
		}
		return Page[T]{Items: items, Next: strconv.Itoa(offset + pageSize)}, nil
	}
}
