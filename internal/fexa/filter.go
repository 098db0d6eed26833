package fexa

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// Filter operators understood by the upstream list endpoints. An empty
// operator means equality.
const (
	OperatorIn      = "in"
	OperatorNotIn   = "not in"
	OperatorBetween = "between"
)

const dateFormat = "2006-01-02"

// Filter is one predicate in the upstream's filters query parameter:
// a url-encoded JSON array of {property, operator, value} objects.
type Filter struct {
	Property string `json:"property"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value"`
}

// FilterBuilder accumulates filters for a list request.
type FilterBuilder struct {
	filters []Filter
}

// NewFilterBuilder creates an empty filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Where adds an equality filter.
func (b *FilterBuilder) Where(property string, value any) *FilterBuilder {
	b.filters = append(b.filters, Filter{Property: property, Value: value})
	return b
}

// WhereIn adds an "in" filter over the given values.
func (b *FilterBuilder) WhereIn(property string, values ...any) *FilterBuilder {
	b.filters = append(b.filters, Filter{Property: property, Operator: OperatorIn, Value: values})
	return b
}

// WhereNotIn adds a "not in" filter over the given values.
func (b *FilterBuilder) WhereNotIn(property string, values ...any) *FilterBuilder {
	b.filters = append(b.filters, Filter{Property: property, Operator: OperatorNotIn, Value: values})
	return b
}

// WhereBetween adds a "between" filter over [from, to].
func (b *FilterBuilder) WhereBetween(property string, from, to any) *FilterBuilder {
	b.filters = append(b.filters, Filter{Property: property, Operator: OperatorBetween, Value: []any{from, to}})
	return b
}

// WhereDateBetween adds a "between" filter over a date range, formatted the
// way the upstream expects (yyyy-mm-dd).
func (b *FilterBuilder) WhereDateBetween(property string, from, to time.Time) *FilterBuilder {
	return b.WhereBetween(property, from.Format(dateFormat), to.Format(dateFormat))
}

// Add appends a pre-built filter.
func (b *FilterBuilder) Add(f Filter) *FilterBuilder {
	b.filters = append(b.filters, f)
	return b
}

// Build returns the accumulated filters.
func (b *FilterBuilder) Build() []Filter {
	out := make([]Filter, len(b.filters))
	copy(out, b.filters)
	return out
}

// ToJSON serializes the filters to the upstream's JSON array shape.
func (b *FilterBuilder) ToJSON() string {
	return filtersJSON(b.filters)
}

func filtersJSON(filters []Filter) string {
	if len(filters) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(filters)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// QueryParameters describes one page of a list request.
type QueryParameters struct {
	Start          int
	Limit          int
	SortBy         string
	SortDescending bool
	Filters        []Filter
}

// Encode builds the start/limit/sort/sort_desc/filters query string.
func (q QueryParameters) Encode() string {
	values := url.Values{}
	values.Set("start", strconv.Itoa(q.Start))
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	values.Set("limit", strconv.Itoa(limit))
	if q.SortBy != "" {
		values.Set("sort", q.SortBy)
		if q.SortDescending {
			values.Set("sort_desc", "true")
		}
	}
	if len(q.Filters) > 0 {
		values.Set("filters", filtersJSON(q.Filters))
	}
	return values.Encode()
}
