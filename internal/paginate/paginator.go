// Package paginate slices an ordered sequence into fixed-size page views.
package paginate

import "iter"

// Paginator splits items into contiguous pages. Pages are sub-slices of the
// original slice and share its backing array.
type Paginator[T any] struct {
	items    []T
	pageSize int
}

// New creates a paginator. A page size below 1 is treated as 1.
func New[T any](items []T, pageSize int) Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return Paginator[T]{items: items, pageSize: pageSize}
}

// PageSize returns the effective page size.
func (p Paginator[T]) PageSize() int {
	return p.pageSize
}

// Len returns the number of pages.
func (p Paginator[T]) Len() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Page returns the i-th page (zero-based).
func (p Paginator[T]) Page(i int) ([]T, bool) {
	if i < 0 || i >= p.Len() {
		return nil, false
	}
	start := i * p.pageSize
	end := min(start+p.pageSize, len(p.items))
	return p.items[start:end:end], true
}

// Pages yields every page in order. The sequence can be ranged over more than once.
func (p Paginator[T]) Pages() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for i := 0; i < p.Len(); i++ {
			page, _ := p.Page(i)
			if !yield(page) {
				return
			}
		}
	}
}
