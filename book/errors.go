package book

import "errors"

var (
	// ErrDuplicateISBN is returned by Save when another book already
	// holds the given ISBN.
	ErrDuplicateISBN = errors.New("isbn already registered")

	// ErrMissingID is returned by Update and Delete when the book has
	// no storage-assigned ID.
	ErrMissingID = errors.New("book id is required")

	// ErrNotFound is the repository-level absence signal. The service
	// translates it into the (Book, bool, error) lookup result.
	ErrNotFound = errors.New("book not found")
)
