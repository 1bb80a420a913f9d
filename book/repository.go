package book

import "context"

/* Small, focused interfaces
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for books
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Get(ctx context.Context, id int64) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// ExistsByISBN reports whether a book with the ISBN is persisted.
	// Save uses it to enforce ISBN uniqueness before inserting.
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
}

// Writer provides write operations for books
type Writer interface {
	// Insert persists a new book and returns the assigned ID.
	Insert(ctx context.Context, b Book) (int64, error)
	// Update persists the book's current fields and returns the stored
	// representation. Returns ErrNotFound when no row matches the ID.
	Update(ctx context.Context, b Book) (Book, error)
	Delete(ctx context.Context, b Book) error
}

// Finder provides the example-based paginated search. Implementations
// take the page request as given; the service normalizes it.
type Finder interface {
	Find(ctx context.Context, f Filter, req PageRequest) (Page, error)
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Finder
	Close(ctx context.Context) error
}
