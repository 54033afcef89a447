package service

import "math"

// DefaultPageLimit is the number of events shown per page.
const DefaultPageLimit = 3

// Window is an offset/limit view over TotalRows records. Offset is
// always a multiple of Limit.
type Window struct {
	Offset    int
	Limit     int
	TotalRows int
}

// WindowForPage returns the window of 1-based page n. Pages below 1 are
// treated as page 1; pages whose offset would overflow are capped.
func WindowForPage(n, limit int) Window {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if n < 1 {
		n = 1
	}
	if maxPage := math.MaxInt / limit; n > maxPage {
		n = maxPage
	}
	return Window{Offset: (n - 1) * limit, Limit: limit}
}

// Page is the 1-based page number of the window.
func (w Window) Page() int {
	return w.Offset/w.Limit + 1
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool {
	return w.Offset != 0
}

// HasNext reports whether a next page exists.
func (w Window) HasNext() bool {
	return w.Offset+w.Limit < w.TotalRows
}

// PrevPage is the page before this one, never below 1.
func (w Window) PrevPage() int {
	return max(w.Page()-1, 1)
}

// NextPage is the page after this one.
func (w Window) NextPage() int {
	return w.Page() + 1
}

// LastPage is the highest page holding at least one row, or 1 when empty.
func (w Window) LastPage() int {
	if w.TotalRows == 0 {
		return 1
	}
	return (w.TotalRows + w.Limit - 1) / w.Limit
}
