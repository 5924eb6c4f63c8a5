package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int
	MaxPage = math.MaxInt / MaxLimit
)

// DonorFilter narrows the donor directory. Nil fields do not filter.
type DonorFilter struct {
	SearchTerm   string
	BloodType    *string
	Location     *string
	Availability *bool
}

// PageOptions controls paging and ordering of directory queries
type PageOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Skip returns the number of rows preceding the requested page
func (o PageOptions) Skip() int {
	return (o.Page - 1) * o.Limit
}

// Normalize replaces missing or non-positive paging values with defaults
// and clamps page and limit to their maximums
func (o PageOptions) Normalize() PageOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Page > MaxPage {
		o.Page = MaxPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

// PageMeta describes a page of results
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// DonorPage is one page of the donor directory
type DonorPage struct {
	Meta PageMeta          `json:"meta"`
	Data []UserWithProfile `json:"data"`
}
