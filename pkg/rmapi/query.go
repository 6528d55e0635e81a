package rmapi

import (
	"net/url"
	"strconv"
)

// QueryParams represents the query string of a listing request.
type QueryParams struct {
	// Page is the 1-based page number; zero leaves it to the server.
	Page int
	// Filters holds the filters the caller supplied a value for.
	Filters map[string]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithPage sets the page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithFilter sets a filter, replacing any previous value for the key.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// WithOptionalFilter sets a filter only when value is non-nil. An explicit
// empty string is still a supplied value and is sent.
func (q *QueryParams) WithOptionalFilter(key string, value *string) *QueryParams {
	if value == nil {
		return q
	}

	return q.WithFilter(key, *value)
}

// Clone returns a deep copy. A nil receiver clones to empty params.
func (q *QueryParams) Clone() *QueryParams {
	clone := NewQueryParams()
	if q == nil {
		return clone
	}

	clone.Page = q.Page
	for key, value := range q.Filters {
		clone.Filters[key] = value
	}

	return clone
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	for key, value := range q.Filters {
		values.Set(key, value)
	}

	return values
}

// Encode renders the parameters as a query string with keys in sorted
// order, so equal inputs always encode identically.
func (q *QueryParams) Encode() string {
	return q.ToValues().Encode()
}

// BuildFilters turns a sparse set of named filters into query parameters,
// omitting every field whose value is nil.
func BuildFilters(fields map[string]*string) *QueryParams {
	params := NewQueryParams()

	for key, value := range fields {
		params.WithOptionalFilter(key, value)
	}

	return params
}

// Filter is implemented by the per-kind filter structs.
type Filter interface {
	Params() *QueryParams
}

// CharacterFilter holds the character listing filters. Nil fields are not sent.
type CharacterFilter struct {
	Name    *string
	Status  *string
	Species *string
	Type    *string
	Gender  *string
}

// Params converts the filter to query parameters.
func (f CharacterFilter) Params() *QueryParams {
	return BuildFilters(map[string]*string{
		"name":    f.Name,
		"status":  f.Status,
		"species": f.Species,
		"type":    f.Type,
		"gender":  f.Gender,
	})
}

// EpisodeFilter holds the episode listing filters. Code filters on the
// episode code ("episode" on the wire).
type EpisodeFilter struct {
	Name *string
	Code *string
}

// Params converts the filter to query parameters.
func (f EpisodeFilter) Params() *QueryParams {
	return BuildFilters(map[string]*string{
		"name":    f.Name,
		"episode": f.Code,
	})
}

// LocationFilter holds the location listing filters.
type LocationFilter struct {
	Name      *string
	Type      *string
	Dimension *string
}

// Params converts the filter to query parameters.
func (f LocationFilter) Params() *QueryParams {
	return BuildFilters(map[string]*string{
		"name":      f.Name,
		"type":      f.Type,
		"dimension": f.Dimension,
	})
}

// String returns a pointer to s, for filling filter structs.
func String(s string) *string {
	return &s
}
