// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net/url"
	"strconv"
)

// PageQuery selects one page of articles. Platform and Status are optional
// filters; an empty value means "no filter" and is omitted from the request.
type PageQuery struct {
	Page     int
	Size     int
	Platform string
	Status   string
}

// Validate checks page ≥ 0 and size > 0.
func (q PageQuery) Validate() error {
	if q.Page < 0 {
		return fmt.Errorf("page must be >= 0, got %d", q.Page)
	}
	if q.Size <= 0 {
		return fmt.Errorf("size must be > 0, got %d", q.Size)
	}
	return nil
}

// Values encodes the query. page and size are always present; the filters
// only when set.
func (q PageQuery) Values() url.Values {
	v := url.Values{
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.Size)},
	}
	if q.Platform != "" {
		v.Set("platform", q.Platform)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// PageResponse is the backend's pagination envelope.
type PageResponse[T any] struct {
	Content       []T   `json:"content" yaml:"content"`
	TotalElements int64 `json:"totalElements" yaml:"total_elements"`
	TotalPages    int   `json:"totalPages" yaml:"total_pages"`
	CurrentPage   int   `json:"currentPage" yaml:"current_page"`
	PageSize      int   `json:"pageSize" yaml:"page_size"`
}

// ExpectedPages returns ceil(totalElements / pageSize), or 0 when pageSize is
// not positive.
func ExpectedPages(totalElements int64, pageSize int) int {
	if pageSize <= 0 || totalElements <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((totalElements + size - 1) / size)
}

// Validate checks the envelope invariants: content fits in a page and
// totalPages agrees with totalElements and pageSize.
func (p PageResponse[T]) Validate() error {
	if p.TotalElements < 0 {
		return fmt.Errorf("totalElements is negative (%d)", p.TotalElements)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("pageSize is negative (%d)", p.PageSize)
	}
	if len(p.Content) > p.PageSize {
		return fmt.Errorf("content has %d items, pageSize is %d", len(p.Content), p.PageSize)
	}
	if want := ExpectedPages(p.TotalElements, p.PageSize); p.TotalPages != want {
		return fmt.Errorf("totalPages is %d, want ceil(%d/%d) = %d", p.TotalPages, p.TotalElements, p.PageSize, want)
	}
	return nil
}

// HasNext reports whether a page follows this one.
func (p PageResponse[T]) HasNext() bool {
	return p.CurrentPage+1 < p.TotalPages
}
