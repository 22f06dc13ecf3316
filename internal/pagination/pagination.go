// Package pagination implements the fixed-size page arithmetic shared by
// every feed. Out-of-range page numbers clamp to the nearest valid page
// instead of erroring.
package pagination

import "math"

// DefaultPageSize is the number of posts per feed page unless configured.
const DefaultPageSize = 10

// Page describes one resolved feed page.
type Page struct {
	Number     int   `json:"currentPage"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
	PerPage    int   `json:"itemsPerPage"`
	HasNext    bool  `json:"hasNextPage"`
	HasPrev    bool  `json:"hasPreviousPage"`
}

// Resolve clamps the requested page number against the total item count.
// An empty result set still yields page 1 of 1.
func Resolve(requested, perPage int, totalItems int64) Page {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		requested = totalPages
	}
	return Page{
		Number:     requested,
		TotalPages: totalPages,
		TotalItems: totalItems,
		PerPage:    perPage,
		HasNext:    requested < totalPages,
		HasPrev:    requested > 1,
	}
}

// Offset is the row offset for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}
