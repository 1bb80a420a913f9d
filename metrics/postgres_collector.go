package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// authorGroupLimit bounds the by-author series so a huge catalog does
// not explode metric cardinality.
const authorGroupLimit = 100

// PostgresCollector implements the Collector interface against the
// books table. It shares the repository's *sql.DB pool.
type PostgresCollector struct {
	db *sql.DB
}

// NewPostgresCollector creates a new PostgreSQL stats collector
func NewPostgresCollector(db *sql.DB) *PostgresCollector {
	return &PostgresCollector{
		db: db,
	}
}

// Collect gathers all stats from the database
func (c *PostgresCollector) Collect(ctx context.Context) (Stats, error) {
	total, err := c.GetTotalBooks(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("getting total books: %w", err)
	}

	byAuthor, err := c.GetBooksByAuthor(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("getting books by author: %w", err)
	}

	return Stats{
		TotalBooks:    total,
		BooksByAuthor: byAuthor,
		Timestamp:     time.Now(),
	}, nil
}

// GetTotalBooks returns the number of persisted books
func (c *PostgresCollector) GetTotalBooks(ctx context.Context) (int64, error) {
	var total int64
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return total, nil
}

// GetBooksByAuthor returns book counts grouped by author
func (c *PostgresCollector) GetBooksByAuthor(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT author, COUNT(*)
		FROM books
		GROUP BY author
		ORDER BY COUNT(*) DESC
		LIMIT $1
	`

	rows, err := c.db.QueryContext(ctx, query, authorGroupLimit)
	if err != nil {
		return nil, fmt.Errorf("grouping books by author: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var author string
		var count int64
		if err := rows.Scan(&author, &count); err != nil {
			return nil, fmt.Errorf("scanning author count: %w", err)
		}
		counts[author] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating author counts: %w", err)
	}

	return counts, nil
}
