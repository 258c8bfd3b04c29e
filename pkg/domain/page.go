package domain

// Page is one page of a paginated listing.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int64 `json:"size"`
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
}

// HasNext reports whether a page after this one exists.
func (p Page[T]) HasNext() bool {
	return p.Current < p.Pages
}
