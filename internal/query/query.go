// Package query implements the generic read-side pipeline shared by every
// listing endpoint: text search, status and date-range filters, and
// pagination, composed in a fixed order. Query operations never fail;
// an empty result is a valid result.
package query

import "strings"

// Params describes one listing request. Nil filter pointers mean "no
// filter" — absence is typed rather than signalled with a sentinel value.
type Params struct {
	Search   string
	Status   *string
	Category *string
	From     string
	To       string
	Page     int
	PageSize int
}

// Page is one page of a filtered collection. Total counts the filtered
// set, not the whole collection, so callers can compute page counts.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Search returns the records where any of the named string fields contains
// text, case-insensitively. Blank or whitespace text returns the input
// unchanged, in order.
func Search[T any](items []T, text string, fields func(T) []string) []T {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return items
	}

	var out []T
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), text) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// FilterStatus keeps records whose status matches. A nil status applies no
// filter.
func FilterStatus[T any](items []T, status *string, get func(T) string) []T {
	if status == nil {
		return items
	}

	var out []T
	for _, it := range items {
		if get(it) == *status {
			out = append(out, it)
		}
	}
	return out
}

// FilterDateRange keeps records whose ISO date (YYYY-MM-DD) falls within
// [from, to], bounds inclusive. An empty bound is unbounded on that side.
// Lexicographic comparison is correct for that format.
func FilterDateRange[T any](items []T, from, to string, get func(T) string) []T {
	if from == "" && to == "" {
		return items
	}

	var out []T
	for _, it := range items {
		d := get(it)
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Paginate slices out one 1-indexed page. A page past the end of the
// collection yields an empty page, not an error: it signals "no more
// data".
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out
}

// DefaultPageSize is used when a request does not specify one.
const DefaultPageSize = 20

// Accessors names the record fields the pipeline reads.
type Accessors[T any] struct {
	SearchFields func(T) []string
	Status       func(T) string
	Category     func(T) string
	Date         func(T) string
}

// Apply runs the full pipeline in its fixed order: search, then category
// and status filters, then date range, then pagination. Pagination
// therefore always operates on the already-filtered set.
func Apply[T any](items []T, p Params, a Accessors[T]) Page[T] {
	if a.SearchFields != nil {
		items = Search(items, p.Search, a.SearchFields)
	}
	if a.Category != nil {
		items = FilterStatus(items, p.Category, a.Category)
	}
	if a.Status != nil {
		items = FilterStatus(items, p.Status, a.Status)
	}
	if a.Date != nil {
		items = FilterDateRange(items, p.From, p.To, a.Date)
	}
	return Paginate(items, p.Page, p.PageSize)
}
