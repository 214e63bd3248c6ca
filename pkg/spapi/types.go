package spapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Resource is the base JSON:API identity shared by all Stackplane resources.
type Resource struct {
	ID   string `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// Relationship represents a to-one relationship.
type Relationship struct {
	Data *RelationshipData `json:"data,omitempty" yaml:"data,omitempty"`
}

// RelationshipData identifies the related resource.
type RelationshipData struct {
	ID   string `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// ToManyRelationship represents a to-many relationship.
type ToManyRelationship struct {
	Data []RelationshipData `json:"data" yaml:"data"`
}

// NewRelationship builds a to-one relationship for the given resource.
func NewRelationship(resourceType, id string) *Relationship {
	return &Relationship{Data: &RelationshipData{ID: id, Type: resourceType}}
}

// PageMeta carries the server's pagination metadata. It is informational
// only: the pagination engine terminates on short pages, never on these
// counters, because not every endpoint populates them.
type PageMeta struct {
	CurrentPage int  `json:"current-page"        yaml:"current-page"`
	PrevPage    *int `json:"prev-page,omitempty" yaml:"prev-page,omitempty"`
	NextPage    *int `json:"next-page,omitempty" yaml:"next-page,omitempty"`
	TotalPages  int  `json:"total-pages"         yaml:"total-pages"`
	TotalCount  int  `json:"total-count"         yaml:"total-count"`
}

// Meta is the top-level meta object on list responses.
type Meta struct {
	Pagination *PageMeta `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// ListResponse represents a paginated JSON:API list document.
type ListResponse[T any] struct {
	Data []T   `json:"data"           yaml:"data"`
	Meta *Meta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Document wraps a single JSON:API resource document.
type Document[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// QueryParams holds common list options for Stackplane endpoints.
type QueryParams struct {
	// PageNumber is 1-based; zero means "let the server (or the pagination
	// engine) pick".
	PageNumber int
	// PageSize is the requested page size; zero means the default.
	PageSize int
	// Search matches against resource names (search[name]).
	Search string
	// Sort is a comma-separated sort expression, "-" prefix for descending.
	Sort string
	// Include names related resources to side-load.
	Include []string
	// Filters maps filter keys to values, rendered as filter[<key>]=v1,v2.
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithPageNumber sets the page number.
func (q *QueryParams) WithPageNumber(page int) *QueryParams {
	q.PageNumber = page

	return q
}

// WithPageSize sets the page size.
func (q *QueryParams) WithPageSize(size int) *QueryParams {
	q.PageSize = size

	return q
}

// WithSearch sets the name search term.
func (q *QueryParams) WithSearch(term string) *QueryParams {
	q.Search = term

	return q
}

// WithSort sets the sort expression.
func (q *QueryParams) WithSort(sort string) *QueryParams {
	q.Sort = sort

	return q
}

// WithInclude appends related resources to side-load.
func (q *QueryParams) WithInclude(include ...string) *QueryParams {
	q.Include = append(q.Include, include...)

	return q
}

// WithFilter appends values for a filter key.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// Clone returns a deep copy. The pagination engine clones caller params so
// driving the page cursor never mutates the caller's value.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	clone := &QueryParams{
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
		Search:     q.Search,
		Sort:       q.Sort,
		Include:    append([]string(nil), q.Include...),
		Filters:    make(map[string][]string, len(q.Filters)),
	}

	for key, values := range q.Filters {
		clone.Filters[key] = append([]string(nil), values...)
	}

	return clone
}

// ToValues converts the params to URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.PageNumber > 0 {
		values.Set("page[number]", strconv.Itoa(q.PageNumber))
	}

	if q.PageSize > 0 {
		values.Set("page[size]", strconv.Itoa(q.PageSize))
	}

	if q.Search != "" {
		values.Set("search[name]", q.Search)
	}

	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	if len(q.Include) > 0 {
		values.Set("include", strings.Join(q.Include, ","))
	}

	for key, filterValues := range q.Filters {
		if len(filterValues) > 0 {
			values.Set("filter["+key+"]", strings.Join(filterValues, ","))
		}
	}

	return values
}
