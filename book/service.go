package book

import (
	"context"
	"errors"
	"fmt"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for the book catalog
type UseCase interface {
	Save(ctx context.Context, b Book) (Book, error)
	// GetByID and GetByISBN treat absence as a regular outcome, not an
	// error: the bool reports whether the book was found.
	GetByID(ctx context.Context, id int64) (Book, bool, error)
	GetByISBN(ctx context.Context, isbn string) (Book, bool, error)
	Update(ctx context.Context, b Book) (Book, error)
	Delete(ctx context.Context, b Book) error
	Find(ctx context.Context, f Filter, req PageRequest) (Page, error)
}

type Service struct {
	Repo Repository
}

// NewService creates a new book service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Save persists a new book after checking ISBN uniqueness. The
// repository is never asked to insert a duplicate.
func (s *Service) Save(ctx context.Context, b Book) (Book, error) {
	exists, err := s.Repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, fmt.Errorf("checking isbn: %w", err)
	}
	if exists {
		return Book{}, fmt.Errorf("saving book: %w", ErrDuplicateISBN)
	}

	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

// GetByID returns the book and true when found, a zero Book and false
// when absent. Absence is not an error.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, bool, error) {
	b, err := s.Repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Book{}, false, nil
	}
	if err != nil {
		return Book{}, false, fmt.Errorf("selecting book: %w", err)
	}
	return b, true, nil
}

// GetByISBN returns the book and true when found, a zero Book and
// false when absent.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, bool, error) {
	b, err := s.Repo.GetByISBN(ctx, isbn)
	if errors.Is(err, ErrNotFound) {
		return Book{}, false, nil
	}
	if err != nil {
		return Book{}, false, fmt.Errorf("selecting book by isbn: %w", err)
	}
	return b, true, nil
}

// Update persists the book's current fields and returns the stored
// representation. Books that were never persisted are rejected before
// the repository is touched.
func (s *Service) Update(ctx context.Context, b Book) (Book, error) {
	if b.ID == 0 {
		return Book{}, fmt.Errorf("updating book: %w", ErrMissingID)
	}
	updated, err := s.Repo.Update(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	return updated, nil
}

// Delete removes a persisted book. Books that were never persisted are
// rejected before the repository is touched.
func (s *Service) Delete(ctx context.Context, b Book) error {
	if b.ID == 0 {
		return fmt.Errorf("deleting book: %w", ErrMissingID)
	}
	if err := s.Repo.Delete(ctx, b); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

// Find runs the example-based paginated search. The page comes back
// exactly as the repository built it.
func (s *Service) Find(ctx context.Context, f Filter, req PageRequest) (Page, error) {
	page, err := s.Repo.Find(ctx, f, req.Normalize())
	if err != nil {
		return Page{}, fmt.Errorf("finding books: %w", err)
	}
	return page, nil
}
