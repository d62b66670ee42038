// internal/catalog/query.go
package catalog

import "sort"

// SortOrder selects how a product list is ordered for display.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Query describes a client-side view over a fetched product list:
// optional category filter, optional price ordering, and fixed-size
// pagination. Page numbers are 1-based.
type Query struct {
	Category string
	Sort     SortOrder
	Page     int
	PerPage  int
}

// Page is one page of a filtered and sorted product list.
type Page struct {
	Products   []Product
	Total      int
	TotalPages int
}

// Apply evaluates the query against a product snapshot. The input slice
// is never mutated; sorting works on a copy.
func (q Query) Apply(products []Product) Page {
	filtered := products
	if q.Category != "" {
		filtered = make([]Product, 0, len(products))
		for _, p := range products {
			if p.Category == q.Category {
				filtered = append(filtered, p)
			}
		}
	}

	switch q.Sort {
	case SortPriceAsc, SortPriceDesc:
		sorted := append([]Product(nil), filtered...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if q.Sort == SortPriceAsc {
				return sorted[i].Price.LessThan(sorted[j].Price)
			}
			return sorted[j].Price.LessThan(sorted[i].Price)
		})
		filtered = sorted
	}

	total := len(filtered)
	perPage := q.PerPage
	if perPage <= 0 {
		return Page{Products: filtered, Total: total, TotalPages: 1}
	}

	// An empty result still has one (empty) page, matching the
	// unpaginated branch.
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= total {
		return Page{Total: total, TotalPages: totalPages}
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return Page{Products: filtered[start:end], Total: total, TotalPages: totalPages}
}
