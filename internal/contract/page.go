package contract

// Page is the generic paged envelope every list endpoint wraps its items in.
// TotalPages and HasNextPage are emitted by some endpoints only.
type Page[T any] struct {
	Items       []T   `json:"items" validate:"dive"`
	PageNumber  int   `json:"pageNumber" validate:"gte=0"`
	PageSize    int   `json:"pageSize" validate:"gte=0"`
	TotalCount  int   `json:"totalCount" validate:"gte=0"`
	TotalPages  *int  `json:"totalPages,omitempty"`
	HasNextPage *bool `json:"hasNextPage,omitempty"`
}

// IsLast reports whether this page is the final one. When the endpoint did
// not emit HasNextPage the answer is derived from the counts.
func (p *Page[T]) IsLast() bool {
	if p.HasNextPage != nil {
		return !*p.HasNextPage
	}
	if p.PageSize == 0 {
		return true
	}
	return p.PageNumber*p.PageSize >= p.TotalCount
}
