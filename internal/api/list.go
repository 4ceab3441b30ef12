package api

import (
	"net/url"
	"strconv"
)

// ListOptions carries the common pagination and filter parameters accepted
// by paged list endpoints
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
}

func (o ListOptions) params() url.Values {
	params := url.Values{}
	if o.Page > 0 {
		params.Set("pageNumber", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	return params
}
