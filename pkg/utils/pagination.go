package utils

import "strconv"

// MaxLimit caps a single page.
const MaxLimit = 100

// PageRequest is a normalised page/limit pair. Limit 0 means unbounded.
type PageRequest struct {
	Page  int
	Limit int
}

// PageMeta accompanies every paginated listing.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPageRequest clamps page to at least 1 and limit into [0, MaxLimit].
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 0:
		limit = 0
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// ParsePageRequest reads raw query values. Unparseable or non-positive limits fall back to defaultLimit,
// so a client can never ask for an unbounded page.
func ParsePageRequest(page, limit string, defaultLimit int) PageRequest {
	p, err := strconv.Atoi(page)
	if err != nil {
		p = 1
	}
	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 {
		l = defaultLimit
	}
	return NewPageRequest(p, l)
}

func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// NewPageMeta describes page of a listing holding total rows. An unbounded page reports itself as the only one.
func NewPageMeta(total int64, page, limit int) PageMeta {
	if limit <= 0 {
		return PageMeta{Page: 1, Limit: int(total), TotalCount: total, TotalPages: 1}
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{Page: page, Limit: limit, TotalCount: total, TotalPages: pages}
}
