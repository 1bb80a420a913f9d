package metrics

import (
	"context"
	"time"
)

// Stats represents the current state of the book catalog.
type Stats struct {
	// TotalBooks is the number of persisted books
	TotalBooks int64 `json:"total_books"`

	// BooksByAuthor maps author name to number of persisted books
	BooksByAuthor map[string]int64 `json:"books_by_author"`

	// Timestamp when stats were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting catalog statistics.
type Collector interface {
	// Collect gathers current stats from storage
	Collect(ctx context.Context) (Stats, error)

	// GetTotalBooks returns the number of persisted books
	GetTotalBooks(ctx context.Context) (int64, error)

	// GetBooksByAuthor returns book counts grouped by author
	GetBooksByAuthor(ctx context.Context) (map[string]int64, error)
}
