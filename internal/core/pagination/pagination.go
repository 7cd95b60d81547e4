// Package pagination slices ordered queries into pages.
//
// A page is fetched with one extra "orphan" row past the requested window; its
// presence tells whether a next page exists without counting the whole result
// set. The total is only computed when the caller asks for it.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultOffset  = 0
	DefaultLimit   = 10
)

var (
	ErrUnorderedQuery = errors.New("pagination: query has no explicit ordering")
	ErrMixedModes     = errors.New("pagination: page and offset modes are mutually exclusive")
	ErrOutOfRange     = errors.New("pagination: parameter out of range")
)

// Params is the pagination directive as received from the caller. Page mode
// (page, per_page) and offset mode (offset, limit) are mutually exclusive.
type Params struct {
	Page    *int `json:"page,omitempty" validate:"omitempty,min=1"`
	PerPage *int `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	Offset  *int `json:"offset,omitempty" validate:"omitempty,min=0"`
	Limit   *int `json:"limit,omitempty" validate:"omitempty,gt=0"`
	Count   bool `json:"count"`
}

// Window is a resolved [Offset, Offset+Size) slice of an ordered result set.
type Window struct {
	Offset int
	Size   int
	Count  bool
}

// Window resolves p into a concrete window, applying page mode defaults when
// no field is given.
func (p Params) Window() (Window, error) {
	pageMode := p.Page != nil || p.PerPage != nil
	offsetMode := p.Offset != nil || p.Limit != nil
	if pageMode && offsetMode {
		return Window{}, ErrMixedModes
	}

	if offsetMode {
		offset, limit := valueOr(p.Offset, DefaultOffset), valueOr(p.Limit, DefaultLimit)
		if offset < 0 || limit <= 0 || !fits(offset, limit) {
			return Window{}, fmt.Errorf("%w: offset=%d limit=%d", ErrOutOfRange, offset, limit)
		}
		return Window{Offset: offset, Size: limit, Count: p.Count}, nil
	}

	page, perPage := valueOr(p.Page, DefaultPage), valueOr(p.PerPage, DefaultPerPage)
	if page < 1 || perPage < 1 || perPage > MaxPerPage || page-1 > (math.MaxInt-1-perPage)/perPage {
		return Window{}, fmt.Errorf("%w: page=%d per_page=%d", ErrOutOfRange, page, perPage)
	}
	return Window{Offset: (page - 1) * perPage, Size: perPage, Count: p.Count}, nil
}

// fits reports whether the window plus its orphan row stays addressable.
func fits(offset, size int) bool {
	return size <= math.MaxInt-1-offset
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Query is an ordered, filtered and countable result set.
type Query[R any] interface {
	// Ordered reports whether the query carries an explicit ordering.
	Ordered() bool
	// Fetch returns at most limit rows starting at offset.
	Fetch(ctx context.Context, offset, limit int) ([]R, error)
	// Count returns the size of the unwindowed result set.
	Count(ctx context.Context) (int64, error)
}

// Page is the paginated result returned to callers.
type Page[T any] struct {
	Items     []T    `json:"items"`
	HasNext   bool   `json:"has_next"`
	TotalSize *int64 `json:"total_size"`
}

// Paginate fetches the window w of q and maps every row through project.
func Paginate[R, T any](ctx context.Context, q Query[R], w Window, project func(R) T) (*Page[T], error) {
	if !q.Ordered() {
		return nil, ErrUnorderedQuery
	}
	if w.Size <= 0 || w.Offset < 0 || !fits(w.Offset, w.Size) {
		return nil, fmt.Errorf("%w: offset=%d size=%d", ErrOutOfRange, w.Offset, w.Size)
	}

	rows, err := q.Fetch(ctx, w.Offset, w.Size+1)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	page := &Page[T]{Items: make([]T, 0, min(len(rows), w.Size))}
	if len(rows) > w.Size {
		page.HasNext = true
		rows = rows[:w.Size]
	}
	for _, row := range rows {
		page.Items = append(page.Items, project(row))
	}

	if w.Count {
		total, err := q.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
		page.TotalSize = &total
	}
	return page, nil
}

// SliceQuery is an in-memory Query over an already ordered slice.
type SliceQuery[R any] struct {
	Rows      []R
	Unordered bool
}

func (q SliceQuery[R]) Ordered() bool { return !q.Unordered }

func (q SliceQuery[R]) Fetch(_ context.Context, offset, limit int) ([]R, error) {
	if offset < 0 || limit <= 0 || offset >= len(q.Rows) {
		return nil, nil
	}
	end := len(q.Rows)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]R, end-offset)
	copy(out, q.Rows[offset:end])
	return out, nil
}

func (q SliceQuery[R]) Count(context.Context) (int64, error) {
	return int64(len(q.Rows)), nil
}
