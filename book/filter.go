package book

const (
	// DefaultPageSize is used when a page request carries no size.
	DefaultPageSize = 10
	// MaxPageSize caps a single page of find results.
	MaxPageSize = 100
)

/* Filter is an example-based query: non-zero fields become equality
 * predicates, zero fields are ignored
 */
type Filter struct {
	Title  string
	Author string
	ISBN   string
}

// IsZero reports whether the filter has no predicates.
func (f Filter) IsZero() bool {
	return f.Title == "" && f.Author == "" && f.ISBN == ""
}

// PageRequest selects a zero-based page of find results.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to valid bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset the request maps to.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

/* Page is one page of find results. Total and Content come straight
 * from storage; Page and Size echo the request
 */
type Page struct {
	Content []Book
	Total   int64
	Page    int
	Size    int
}

// TotalPages returns how many pages the total amounts to.
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.Total / int64(p.Size)
	if p.Total%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}
