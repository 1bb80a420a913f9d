package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // goqu postgres dialect
	_ "github.com/lib/pq"                               // PostgreSQL driver
	"github.com/nrisk/library-api/book"
)

const dialectPostgres = "postgres"

/* PostgreSQL implementation of book.Repository
 * Static SQL for the keyed operations, goqu for the example-based Find
 * where the predicate set depends on which filter fields are set
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool.
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection may be reused
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Get fetches a book by ID
func (r *Repository) Get(ctx context.Context, id int64) (book.Book, error) {
	query := "SELECT id, title, author, isbn FROM books WHERE id = $1"

	var b book.Book
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	return b, nil
}

// GetByISBN fetches a book by its ISBN
func (r *Repository) GetByISBN(ctx context.Context, isbn string) (book.Book, error) {
	query := "SELECT id, title, author, isbn FROM books WHERE isbn = $1"

	var b book.Book
	err := r.DB.QueryRowContext(ctx, query, isbn).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book by isbn: %w", err)
	}

	return b, nil
}

// ExistsByISBN reports whether any book holds the given ISBN
func (r *Repository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)"

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, isbn).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking isbn existence: %w", err)
	}

	return exists, nil
}

// Insert persists a new book and returns the generated ID
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	query := `
		INSERT INTO books (title, author, isbn)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, b.Title, b.Author, b.ISBN).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

// Update persists the book's fields and returns the stored row
func (r *Repository) Update(ctx context.Context, b book.Book) (book.Book, error) {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3
		WHERE id = $4
		RETURNING id, title, author, isbn
	`

	var updated book.Book
	err := r.DB.QueryRowContext(ctx, query, b.Title, b.Author, b.ISBN, b.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Author,
		&updated.ISBN,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book: %w", err)
	}

	return updated, nil
}

// Delete removes a book
func (r *Repository) Delete(ctx context.Context, b book.Book) error {
	query := "DELETE FROM books WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, b.ID)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

// Find runs the example-based paginated search. Non-zero filter fields
// become equality predicates; results are ordered by id so pages are
// stable. The request is taken as given, normalization belongs to the
// service.
func (r *Repository) Find(ctx context.Context, f book.Filter, req book.PageRequest) (book.Page, error) {
	where := filterExpressions(f)

	countSQL, countArgs, err := goqu.Dialect(dialectPostgres).
		From("books").
		Select(goqu.COUNT(goqu.Star())).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return book.Page{}, fmt.Errorf("building count query: %w", err)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return book.Page{}, fmt.Errorf("counting books: %w", err)
	}

	selectSQL, selectArgs, err := goqu.Dialect(dialectPostgres).
		From("books").
		Select("id", "title", "author", "isbn").
		Where(where...).
		Order(goqu.I("id").Asc()).
		Limit(uint(req.Size)).
		Offset(uint(req.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return book.Page{}, fmt.Errorf("building find query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		return book.Page{}, fmt.Errorf("finding books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN); err != nil {
			return book.Page{}, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return book.Page{}, fmt.Errorf("iterating books: %w", err)
	}

	return book.Page{
		Content: books,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
	}, nil
}

func filterExpressions(f book.Filter) []goqu.Expression {
	exprs := make([]goqu.Expression, 0, 3)
	if f.Title != "" {
		exprs = append(exprs, goqu.Ex{"title": f.Title})
	}
	if f.Author != "" {
		exprs = append(exprs, goqu.Ex{"author": f.Author})
	}
	if f.ISBN != "" {
		exprs = append(exprs, goqu.Ex{"isbn": f.ISBN})
	}
	return exprs
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the books table (useful for tests)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			isbn TEXT NOT NULL UNIQUE
		)
	`

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable removes the books table (useful for tests)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS books CASCADE"

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}
