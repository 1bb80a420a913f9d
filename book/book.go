package book

/* Book represents a catalog entry in the library
 * Uses value semantics as it represents data, not behavior
 */
type Book struct {
	// ID is assigned by storage on first persist; zero means the book
	// was never persisted.
	ID     int64
	Title  string
	Author string
	// ISBN is the uniqueness key among persisted books.
	ISBN string
}
